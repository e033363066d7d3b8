package reconciler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ardzk/smmpanel/internal/model"
	"github.com/ardzk/smmpanel/internal/provider"
	"go.uber.org/zap"
)

type Storage interface {
	GetReconcilableOrders(ctx context.Context, limit int) ([]model.ReconcilableOrder, error)
	ApplyProviderStatus(ctx context.Context, orderID int64, status model.OrderStatus, startCount, remains *int) (changed, refundApplied bool, err error)
}

type StatusClient interface {
	Status(ctx context.Context, providerOrderID int64) (provider.StatusInfo, error)
}

// Scheduler walks non-terminal orders on a fixed interval and pulls
// their real state from the provider. Single-instance: the overlap
// guard is in-memory and does not coordinate across processes.
type Scheduler struct {
	storage Storage
	clients map[string]StatusClient
	stats   *Stats
	logger  *zap.SugaredLogger

	Interval     time.Duration
	InitialDelay time.Duration
	BatchSize    int
	QueryDelay   time.Duration

	running atomic.Bool
}

func NewScheduler(storage Storage, clients map[string]StatusClient, stats *Stats, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		storage: storage,
		clients: clients,
		stats:   stats,
		logger:  logger,

		Interval:     5 * time.Minute,
		InitialDelay: 15 * time.Second,
		BatchSize:    100,
		QueryDelay:   250 * time.Millisecond,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.InitialDelay):
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes one reconciliation pass. A pass still in flight when
// the next tick fires makes the new one a no-op.
func (s *Scheduler) RunOnce(ctx context.Context) (RunStats, bool) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warnw("reconciliation run skipped, previous run still in progress")
		return RunStats{}, false
	}
	defer s.running.Store(false)

	rs := RunStats{StartedAt: time.Now()}
	defer func() {
		rs.Duration = time.Since(rs.StartedAt)
		s.stats.Record(rs)
		s.logger.Infow("reconciliation run finished",
			"checked", rs.Checked, "updated", rs.Updated, "refunded", rs.Refunded,
			"failed", rs.Failed, "unmapped", rs.Unmapped, "duration", rs.Duration)
	}()

	orders, err := s.storage.GetReconcilableOrders(ctx, s.BatchSize)
	if err != nil {
		s.logger.Errorw("select reconcilable orders", "error", err)
		rs.Failed++
		return rs, true
	}

	for i, order := range orders {
		if ctx.Err() != nil {
			return rs, true
		}
		if i > 0 {
			// пауза между запросами, чтобы не упереться в лимиты провайдера
			time.Sleep(s.QueryDelay)
		}

		rs.Checked++
		if err := s.reconcileOrder(ctx, order, &rs); err != nil {
			rs.Failed++
			s.logger.Errorw("reconcile order", "order", order.ID, "error", err)
		}
	}

	return rs, true
}

func (s *Scheduler) reconcileOrder(ctx context.Context, order model.ReconcilableOrder, rs *RunStats) error {
	client, ok := s.clients[order.ProviderKey]
	if !ok {
		s.logger.Warnw("no client for provider", "provider", order.ProviderKey, "order", order.ID)
		return nil
	}

	info, err := client.Status(ctx, *order.ProviderOrderID)
	if err != nil {
		return err
	}

	status, ok := provider.MapStatus(info.Status)
	if !ok {
		// незнакомый статус оставляет заказ как есть
		rs.Unmapped++
		s.logger.Warnw("unmapped provider status", "status", info.Status, "order", order.ID)
		return nil
	}

	changed, refunded, err := s.storage.ApplyProviderStatus(ctx, order.ID, status, info.StartCount, info.Remains)
	if err != nil {
		return err
	}
	if changed {
		rs.Updated++
	}
	if refunded {
		rs.Refunded++
	}

	return nil
}
