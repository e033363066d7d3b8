package utils

import "github.com/ardzk/smmpanel/internal/errs"

// CheckOrderable validates an order against the service it targets: the
// service must be active and the quantity inside its [min, max] window.
func CheckOrderable(quantity, minQ, maxQ int, active bool) error {
	if !active {
		return errs.ErrInvalidState
	}
	if quantity < minQ || quantity > maxQ {
		return errs.ErrInvalidState
	}
	return nil
}

// ChargeFor returns the amount debited for quantity units of a service
// priced per 1000 units, rounded up so partial thousands are never free.
func ChargeFor(quantity int, pricePer1000 int64) int64 {
	q := int64(quantity)
	return (q*pricePer1000 + 999) / 1000
}

// CommissionFor returns the agent commission for a charge, rounded down.
func CommissionFor(charge int64, ratePercent int) int64 {
	return charge * int64(ratePercent) / 100
}
