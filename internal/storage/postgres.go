package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		login TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		balance BIGINT NOT NULL DEFAULT 0,
		referral_code TEXT UNIQUE,
		referred_by TEXT,
		commission_rate INT,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		amount BIGINT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS services (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price BIGINT NOT NULL,
		min_quantity INT NOT NULL,
		max_quantity INT NOT NULL,
		provider_key TEXT NOT NULL,
		provider_id BIGINT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (provider_key, provider_id)
	);
	CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		service_id INT NOT NULL REFERENCES services(id),
		quantity INT NOT NULL,
		charge BIGINT NOT NULL,
		link TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		provider_order_id BIGINT,
		start_count INT,
		remains INT,
		agent_code TEXT,
		agent_commission BIGINT,
		refunded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS deposit_requests (
		id BIGSERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		amount BIGINT NOT NULL,
		depositor_name TEXT NOT NULL,
		memo TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDING',
		processed_at TIMESTAMP,
		processed_by INT REFERENCES users(id),
		admin_note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS audit_log (
		id BIGSERIAL PRIMARY KEY,
		actor_id INT NOT NULL REFERENCES users(id),
		action TEXT NOT NULL,
		target TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT NOW()
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, DatabaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, DatabaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

// applyLedgerOp is the only place balance changes. The balance update and
// the transaction insert share tx, so either both commit or neither does.
// No non-negative policy here: debit pre-checks belong to callers, and
// refunds (always credits) must never be blocked.
func applyLedgerOp(ctx context.Context, tx pgx.Tx, userID int, delta int64, txType model.TransactionType, description string) (int64, error) {
	const updateBalanceQuery = `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`
	const insertTransactionQuery = `INSERT INTO transactions (user_id, type, amount, description) VALUES ($1, $2, $3, $4)`

	var newBalance int64
	err := tx.QueryRow(ctx, updateBalanceQuery, delta, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrUserNotFound
		}
		return 0, fmt.Errorf("update balance: %w", err)
	}

	_, err = tx.Exec(ctx, insertTransactionQuery, userID, txType, delta, description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	return newBalance, nil
}

func insertAudit(ctx context.Context, tx pgx.Tx, actorID int, action, target, details string) error {
	const query = `INSERT INTO audit_log (actor_id, action, target, details) VALUES ($1, $2, $3, $4)`

	_, err := tx.Exec(ctx, query, actorID, action, target, details)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (store *PostgresStorage) CreateUser(ctx context.Context, login, passwordHash string, role model.Role, referredBy string) error {
	const insertUserQuery = `INSERT INTO users (login, password_hash, role, referred_by) VALUES ($1, $2, $3, NULLIF($4, ''))`

	_, err := store.db.Exec(ctx, insertUserQuery, login, passwordHash, role, referredBy)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			// 23505 — уникальное ограничение нарушено
			return errs.ErrLoginAlreadyExists
		}
		return err
	}

	return nil
}

func (s *PostgresStorage) GetUserByLogin(ctx context.Context, login string) (model.User, string, error) {
	const query = `SELECT id, login, role, balance, referral_code, referred_by, password_hash FROM users WHERE login = $1`

	var user model.User
	var hash string

	err := s.db.QueryRow(ctx, query, login).Scan(&user.ID, &user.Login, &user.Role, &user.Balance, &user.ReferralCode, &user.ReferredBy, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, "", errs.ErrUserNotFound
		}
		return model.User{}, "", fmt.Errorf("get user by login: %w", err)
	}

	return user, hash, nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id int) (model.User, error) {
	const query = `SELECT id, login, role, balance, referral_code, referred_by, commission_rate FROM users WHERE id = $1`

	var user model.User

	err := s.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Login, &user.Role, &user.Balance, &user.ReferralCode, &user.ReferredBy, &user.CommissionRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (s *PostgresStorage) GetUserBalance(ctx context.Context, user model.User) (model.Balance, error) {
	const query = `SELECT balance FROM users WHERE id = $1`

	var balance int64
	err := s.db.QueryRow(ctx, query, user.ID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Balance{}, errs.ErrUserNotFound
		}
		return model.Balance{}, fmt.Errorf("get balance: %w", err)
	}

	return model.Balance{Current: balance}, nil
}

func (s *PostgresStorage) GetUserTransactions(ctx context.Context, user model.User) ([]model.Transaction, error) {
	const query = `
		SELECT id, user_id, type, amount, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	var list []model.Transaction
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

func (s *PostgresStorage) GetService(ctx context.Context, id int) (model.Service, error) {
	const query = `SELECT id, name, price, min_quantity, max_quantity, provider_key, provider_id, is_active FROM services WHERE id = $1`

	var svc model.Service
	err := s.db.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.Price, &svc.MinQuantity, &svc.MaxQuantity, &svc.ProviderKey, &svc.ProviderID, &svc.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Service{}, errs.ErrNotFound
		}
		return model.Service{}, fmt.Errorf("get service: %w", err)
	}

	return svc, nil
}

func (s *PostgresStorage) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	const query = `
		SELECT id, name, price, min_quantity, max_quantity, provider_key, provider_id, is_active
		FROM services
		WHERE is_active OR NOT $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []model.Service
	for rows.Next() {
		var svc model.Service
		err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.MinQuantity, &svc.MaxQuantity, &svc.ProviderKey, &svc.ProviderID, &svc.IsActive)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// UpsertProviderServices applies a catalog sync batch. Prices of existing
// services change in place; orders are unaffected because charge is
// snapshotted at creation.
func (s *PostgresStorage) UpsertProviderServices(ctx context.Context, providerKey string, services []model.Service) (int, error) {
	const query = `
		INSERT INTO services (name, price, min_quantity, max_quantity, provider_key, provider_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (provider_key, provider_id)
		DO UPDATE SET name = $1, price = $2, min_quantity = $3, max_quantity = $4, is_active = TRUE
	`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	count := 0
	for _, svc := range services {
		_, err := tx.Exec(ctx, query, svc.Name, svc.Price, svc.MinQuantity, svc.MaxQuantity, providerKey, svc.ProviderID)
		if err != nil {
			return 0, fmt.Errorf("upsert service %d: %w", svc.ProviderID, err)
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return count, nil
}
