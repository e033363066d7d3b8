package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
	"github.com/jackc/pgx/v5"
)

func (s *PostgresStorage) CreateDepositRequest(ctx context.Context, user model.User, req model.CreateDepositRequest) (model.DepositRequest, error) {
	const query = `
		INSERT INTO deposit_requests (user_id, amount, depositor_name, memo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	dep := model.DepositRequest{
		UserID:        user.ID,
		Amount:        req.Amount,
		DepositorName: req.DepositorName,
		Memo:          req.Memo,
		Status:        model.DepositPending,
	}

	err := s.db.QueryRow(ctx, query, user.ID, req.Amount, req.DepositorName, req.Memo).Scan(&dep.ID, &dep.CreatedAt)
	if err != nil {
		return model.DepositRequest{}, fmt.Errorf("insert deposit request: %w", err)
	}

	return dep, nil
}

func (s *PostgresStorage) GetUserDepositRequests(ctx context.Context, user model.User) ([]model.DepositRequest, error) {
	const query = `
		SELECT id, user_id, amount, depositor_name, memo, status, processed_at, processed_by, admin_note, created_at
		FROM deposit_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get deposit requests: %w", err)
	}
	defer rows.Close()

	var list []model.DepositRequest
	for rows.Next() {
		var d model.DepositRequest
		err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.DepositorName, &d.Memo, &d.Status, &d.ProcessedAt, &d.ProcessedBy, &d.AdminNote, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan deposit request: %w", err)
		}
		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// ResolveDepositRequest is the single resolution entry point for both
// approval channels: the admin handler passes its actor id, the bot
// callback passes nil. The PENDING guard is re-checked under the row
// lock inside the same transaction that applies the effect, so whoever
// commits first wins and the loser gets ErrAlreadyProcessed.
func (s *PostgresStorage) ResolveDepositRequest(ctx context.Context, id int64, action model.DepositAction, note string, actorID *int) (model.DepositRequest, error) {
	const lockQuery = `SELECT user_id, amount, depositor_name, memo, status, created_at FROM deposit_requests WHERE id = $1 FOR UPDATE`
	const updateQuery = `
		UPDATE deposit_requests
		SET status = $1, processed_at = NOW(), processed_by = $2, admin_note = $3
		WHERE id = $4
		RETURNING processed_at
	`

	if action != model.DepositApprove && action != model.DepositReject {
		return model.DepositRequest{}, errs.ErrInvalidState
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return model.DepositRequest{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	dep := model.DepositRequest{ID: id}
	err = tx.QueryRow(ctx, lockQuery, id).Scan(&dep.UserID, &dep.Amount, &dep.DepositorName, &dep.Memo, &dep.Status, &dep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DepositRequest{}, errs.ErrNotFound
		}
		return model.DepositRequest{}, fmt.Errorf("lock deposit request: %w", err)
	}

	if dep.Status != model.DepositPending {
		return dep, errs.ErrAlreadyProcessed
	}

	newStatus := model.DepositRejected
	if action == model.DepositApprove {
		newStatus = model.DepositApproved
		if _, err := applyLedgerOp(ctx, tx, dep.UserID, dep.Amount, model.TxDeposit, fmt.Sprintf("deposit request %d approved", id)); err != nil {
			return model.DepositRequest{}, err
		}
	}

	err = tx.QueryRow(ctx, updateQuery, newStatus, actorID, note, id).Scan(&dep.ProcessedAt)
	if err != nil {
		return model.DepositRequest{}, fmt.Errorf("update deposit request: %w", err)
	}
	dep.Status = newStatus
	dep.ProcessedBy = actorID
	dep.AdminNote = note

	if actorID != nil {
		auditAction := "deposit_" + strings.ToLower(string(action))
		if err := insertAudit(ctx, tx, *actorID, auditAction, fmt.Sprintf("deposit_request:%d", id), note); err != nil {
			return model.DepositRequest{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.DepositRequest{}, fmt.Errorf("commit: %w", err)
	}

	return dep, nil
}
