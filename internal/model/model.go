package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAgent Role = "AGENT"
	RoleAdmin Role = "ADMIN"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderPartial    OrderStatus = "PARTIAL"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCanceled   OrderStatus = "CANCELED"
	OrderFailed     OrderStatus = "FAILED"
)

// Terminal reports whether no further reconciliation-driven transition
// is expected for the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCanceled || s == OrderFailed
}

type TransactionType string

const (
	TxOrder   TransactionType = "ORDER"
	TxRefund  TransactionType = "REFUND"
	TxDeposit TransactionType = "DEPOSIT"
)

type DepositStatus string

const (
	DepositPending  DepositStatus = "PENDING"
	DepositApproved DepositStatus = "APPROVED"
	DepositRejected DepositStatus = "REJECTED"
)

type DepositAction string

const (
	DepositApprove DepositAction = "APPROVE"
	DepositReject  DepositAction = "REJECT"
)

type User struct {
	ID             int     `json:"id"`
	Login          string  `json:"login"`
	Role           Role    `json:"role"`
	Balance        int64   `json:"balance"`
	ReferralCode   *string `json:"referral_code,omitempty"`
	ReferredBy     *string `json:"referred_by,omitempty"`
	CommissionRate *int    `json:"-"`
}

// Transaction is an append-only ledger entry. Amounts are signed minor
// currency units; the sum of a user's transactions equals the balance.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int             `json:"-"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Order struct {
	ID              int64       `json:"id"`
	UserID          int         `json:"-"`
	ServiceID       int         `json:"service_id"`
	Quantity        int         `json:"quantity"`
	Charge          int64       `json:"charge"`
	Link            string      `json:"link"`
	Status          OrderStatus `json:"status"`
	ProviderOrderID *int64      `json:"provider_order_id,omitempty"`
	StartCount      *int        `json:"start_count,omitempty"`
	Remains         *int        `json:"remains,omitempty"`
	AgentCode       *string     `json:"agent_code,omitempty"`
	AgentCommission *int64      `json:"agent_commission,omitempty"`
	Refunded        bool        `json:"-"`
	CreatedAt       time.Time   `json:"created_at"`
}

// ReconcilableOrder carries the provider key of the order's service so
// the reconciler can pick the right upstream client.
type ReconcilableOrder struct {
	Order
	ProviderKey string
}

type Service struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"` // minor currency units per 1000
	MinQuantity int    `json:"min"`
	MaxQuantity int    `json:"max"`
	ProviderKey string `json:"-"`
	ProviderID  int64  `json:"-"`
	IsActive    bool   `json:"is_active"`
}

type DepositRequest struct {
	ID            int64         `json:"id"`
	UserID        int           `json:"-"`
	Amount        int64         `json:"amount"`
	DepositorName string        `json:"depositor_name"`
	Memo          string        `json:"memo,omitempty"`
	Status        DepositStatus `json:"status"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
	ProcessedBy   *int          `json:"-"`
	AdminNote     string        `json:"admin_note,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Balance struct {
	Current int64 `json:"current"`
}
