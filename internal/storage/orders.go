package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
	"github.com/ardzk/smmpanel/internal/utils"
	"github.com/jackc/pgx/v5"
)

// CreateOrder validates the service and the balance and commits the
// debit, the ORDER transaction and the PENDING order as one unit.
// Provider submission happens after commit, elsewhere.
func (s *PostgresStorage) CreateOrder(ctx context.Context, user model.User, req model.CreateOrderRequest) (model.Order, error) {
	const serviceQuery = `SELECT price, min_quantity, max_quantity, is_active FROM services WHERE id = $1`
	const lockBalanceQuery = `SELECT balance FROM users WHERE id = $1 FOR UPDATE`
	const agentQuery = `SELECT commission_rate FROM users WHERE referral_code = $1 AND role = 'AGENT' AND commission_rate IS NOT NULL`
	const insertOrderQuery = `
		INSERT INTO orders (user_id, service_id, quantity, charge, link, status, agent_code, agent_commission)
		VALUES ($1, $2, $3, $4, $5, 'PENDING', $6, $7)
		RETURNING id, created_at
	`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var price int64
	var minQ, maxQ int
	var isActive bool
	err = tx.QueryRow(ctx, serviceQuery, req.ServiceID).Scan(&price, &minQ, &maxQ, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("get service: %w", err)
	}

	if err := utils.CheckOrderable(req.Quantity, minQ, maxQ, isActive); err != nil {
		return model.Order{}, err
	}

	charge := utils.ChargeFor(req.Quantity, price)

	// проверка баланса и списание под блокировкой строки
	var balance int64
	err = tx.QueryRow(ctx, lockBalanceQuery, user.ID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, errs.ErrUserNotFound
		}
		return model.Order{}, fmt.Errorf("lock balance: %w", err)
	}
	if balance < charge {
		return model.Order{}, errs.ErrInsufficientBalance
	}

	// агентский код опционален: не нашёлся — заказ проходит без комиссии
	var agentCode *string
	var agentCommission *int64
	if req.AgentCode != "" {
		var rate int
		err := tx.QueryRow(ctx, agentQuery, req.AgentCode).Scan(&rate)
		if err == nil {
			commission := utils.CommissionFor(charge, rate)
			agentCode = &req.AgentCode
			agentCommission = &commission
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, fmt.Errorf("resolve agent code: %w", err)
		}
	}

	order := model.Order{
		UserID:          user.ID,
		ServiceID:       req.ServiceID,
		Quantity:        req.Quantity,
		Charge:          charge,
		Link:            req.Link,
		Status:          model.OrderPending,
		AgentCode:       agentCode,
		AgentCommission: agentCommission,
	}

	err = tx.QueryRow(ctx, insertOrderQuery, user.ID, req.ServiceID, req.Quantity, charge, req.Link, agentCode, agentCommission).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if _, err := applyLedgerOp(ctx, tx, user.ID, -charge, model.TxOrder, fmt.Sprintf("charge for order %d", order.ID)); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("commit: %w", err)
	}

	return order, nil
}

func (s *PostgresStorage) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	const query = `
		SELECT id, user_id, service_id, quantity, charge, link, status,
		       provider_order_id, start_count, remains, agent_code, agent_commission, refunded, created_at
		FROM orders WHERE id = $1
	`

	var o model.Order
	err := s.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.ServiceID, &o.Quantity, &o.Charge, &o.Link, &o.Status,
		&o.ProviderOrderID, &o.StartCount, &o.Remains, &o.AgentCode, &o.AgentCommission, &o.Refunded, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

func (s *PostgresStorage) GetUserOrders(ctx context.Context, user model.User) ([]model.Order, error) {
	const query = `
		SELECT id, user_id, service_id, quantity, charge, link, status,
		       provider_order_id, start_count, remains, agent_code, agent_commission, refunded, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.ServiceID, &o.Quantity, &o.Charge, &o.Link, &o.Status,
			&o.ProviderOrderID, &o.StartCount, &o.Remains, &o.AgentCode, &o.AgentCommission, &o.Refunded, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return orders, nil
}

const lockOrderQuery = `SELECT user_id, charge, status, refunded FROM orders WHERE id = $1 FOR UPDATE`

// CancelOrder lets the owner cancel an order the provider has not been
// asked about yet. Only PENDING cancels; the refund commits with the
// status change.
func (s *PostgresStorage) CancelOrder(ctx context.Context, user model.User, orderID int64) error {
	const updateQuery = `UPDATE orders SET status = 'CANCELED', refunded = TRUE WHERE id = $1`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int
	var charge int64
	var status model.OrderStatus
	var refunded bool
	err = tx.QueryRow(ctx, lockOrderQuery, orderID).Scan(&ownerID, &charge, &status, &refunded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("lock order: %w", err)
	}

	if ownerID != user.ID {
		return errs.ErrNotAuthorized
	}
	if status != model.OrderPending {
		return errs.ErrInvalidState
	}

	if _, err := tx.Exec(ctx, updateQuery, orderID); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	if _, err := applyLedgerOp(ctx, tx, ownerID, charge, model.TxRefund, fmt.Sprintf("refund for canceled order %d", orderID)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// RefundOrder is the admin dispute path. Unlike the original panel it
// refuses a second refund of the same order: the refunded flag is the
// idempotency guard.
func (s *PostgresStorage) RefundOrder(ctx context.Context, admin model.User, orderID int64, note string) error {
	const updateQuery = `UPDATE orders SET status = 'CANCELED', refunded = TRUE WHERE id = $1`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int
	var charge int64
	var status model.OrderStatus
	var refunded bool
	err = tx.QueryRow(ctx, lockOrderQuery, orderID).Scan(&ownerID, &charge, &status, &refunded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("lock order: %w", err)
	}

	if refunded {
		return errs.ErrAlreadyProcessed
	}

	if _, err := tx.Exec(ctx, updateQuery, orderID); err != nil {
		return fmt.Errorf("refund order: %w", err)
	}

	if _, err := applyLedgerOp(ctx, tx, ownerID, charge, model.TxRefund, fmt.Sprintf("admin refund for order %d", orderID)); err != nil {
		return err
	}

	if err := insertAudit(ctx, tx, admin.ID, "order_refund", fmt.Sprintf("order:%d", orderID), note); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *PostgresStorage) MarkOrderSubmitted(ctx context.Context, orderID, providerOrderID int64) error {
	const query = `UPDATE orders SET provider_order_id = $1 WHERE id = $2 AND provider_order_id IS NULL`

	_, err := s.db.Exec(ctx, query, providerOrderID, orderID)
	if err != nil {
		return fmt.Errorf("mark order submitted: %w", err)
	}

	return nil
}

// FailOrderSubmission is the compensation for a failed provider submit:
// the order was already committed, so it moves to FAILED and the charge
// comes back. A no-op when the order was refunded meanwhile (e.g. the
// user canceled before this ran).
func (s *PostgresStorage) FailOrderSubmission(ctx context.Context, orderID int64, reason string) error {
	const updateQuery = `UPDATE orders SET status = 'FAILED', refunded = TRUE WHERE id = $1`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int
	var charge int64
	var status model.OrderStatus
	var refunded bool
	err = tx.QueryRow(ctx, lockOrderQuery, orderID).Scan(&ownerID, &charge, &status, &refunded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("lock order: %w", err)
	}

	if refunded {
		return nil
	}

	if _, err := tx.Exec(ctx, updateQuery, orderID); err != nil {
		return fmt.Errorf("fail order: %w", err)
	}

	if _, err := applyLedgerOp(ctx, tx, ownerID, charge, model.TxRefund, fmt.Sprintf("refund for failed order %d: %s", orderID, reason)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetReconcilableOrders(ctx context.Context, limit int) ([]model.ReconcilableOrder, error) {
	const query = `
		SELECT o.id, o.user_id, o.charge, o.status, o.provider_order_id, s.provider_key
		FROM orders o
		JOIN services s ON s.id = o.service_id
		WHERE o.status IN ('PENDING', 'PROCESSING', 'PARTIAL') AND o.provider_order_id IS NOT NULL
		ORDER BY o.created_at ASC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get reconcilable orders: %w", err)
	}
	defer rows.Close()

	var list []model.ReconcilableOrder
	for rows.Next() {
		var o model.ReconcilableOrder
		err := rows.Scan(&o.ID, &o.UserID, &o.Charge, &o.Status, &o.ProviderOrderID, &o.ProviderKey)
		if err != nil {
			return nil, fmt.Errorf("scan reconcilable order: %w", err)
		}
		list = append(list, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// ApplyProviderStatus records a provider-reported transition. Entering
// CANCELED or FAILED refunds the charge exactly once — repeated polls of
// the same terminal status are no-ops thanks to the refunded flag and
// the changed check.
func (s *PostgresStorage) ApplyProviderStatus(ctx context.Context, orderID int64, newStatus model.OrderStatus, startCount, remains *int) (changed, refundApplied bool, err error) {
	const updateQuery = `
		UPDATE orders
		SET status = $1,
		    start_count = COALESCE($2, start_count),
		    remains = COALESCE($3, remains),
		    refunded = refunded OR $4
		WHERE id = $5
	`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int
	var charge int64
	var status model.OrderStatus
	var refunded bool
	err = tx.QueryRow(ctx, lockOrderQuery, orderID).Scan(&ownerID, &charge, &status, &refunded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, errs.ErrNotFound
		}
		return false, false, fmt.Errorf("lock order: %w", err)
	}

	if status == newStatus {
		return false, false, nil
	}

	needRefund := (newStatus == model.OrderCanceled || newStatus == model.OrderFailed) && !refunded

	if _, err := tx.Exec(ctx, updateQuery, newStatus, startCount, remains, needRefund, orderID); err != nil {
		return false, false, fmt.Errorf("update order status: %w", err)
	}

	if needRefund {
		if _, err := applyLedgerOp(ctx, tx, ownerID, charge, model.TxRefund, fmt.Sprintf("refund for order %d (%s)", orderID, newStatus)); err != nil {
			return false, false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, false, fmt.Errorf("commit: %w", err)
	}

	return true, needRefund, nil
}
