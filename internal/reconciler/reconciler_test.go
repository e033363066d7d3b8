package reconciler

import (
	"context"
	"errors"
	"testing"

	"github.com/ardzk/smmpanel/internal/model"
	"github.com/ardzk/smmpanel/internal/provider"
	"go.uber.org/zap/zaptest"
)

type fakeStorage struct {
	orders   []model.ReconcilableOrder
	statuses map[int64]model.OrderStatus
	refunded map[int64]bool
	applyErr error
}

func (f *fakeStorage) GetReconcilableOrders(ctx context.Context, limit int) ([]model.ReconcilableOrder, error) {
	var out []model.ReconcilableOrder
	for _, o := range f.orders {
		if !f.statuses[o.ID].Terminal() && len(out) < limit {
			o.Status = f.statuses[o.ID]
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStorage) ApplyProviderStatus(ctx context.Context, orderID int64, status model.OrderStatus, startCount, remains *int) (bool, bool, error) {
	if f.applyErr != nil {
		return false, false, f.applyErr
	}
	if f.statuses[orderID] == status {
		return false, false, nil
	}
	f.statuses[orderID] = status
	refund := (status == model.OrderCanceled || status == model.OrderFailed) && !f.refunded[orderID]
	if refund {
		f.refunded[orderID] = true
	}
	return true, refund, nil
}

type fakeClient struct {
	responses map[int64]provider.StatusInfo
	errs      map[int64]error
	calls     int
}

func (f *fakeClient) Status(ctx context.Context, providerOrderID int64) (provider.StatusInfo, error) {
	f.calls++
	if err := f.errs[providerOrderID]; err != nil {
		return provider.StatusInfo{}, err
	}
	return f.responses[providerOrderID], nil
}

func reconcilable(id, providerID int64, status model.OrderStatus) model.ReconcilableOrder {
	return model.ReconcilableOrder{
		Order:       model.Order{ID: id, UserID: 1, Charge: 5000, Status: status, ProviderOrderID: &providerID},
		ProviderKey: "main",
	}
}

func newTestScheduler(t *testing.T, storage Storage, client StatusClient) *Scheduler {
	t.Helper()
	s := NewScheduler(storage, map[string]StatusClient{"main": client}, NewStats(20), zaptest.NewLogger(t).Sugar())
	s.QueryDelay = 0
	return s
}

func TestRunOnce_AppliesMappedStatus(t *testing.T) {
	storage := &fakeStorage{
		orders:   []model.ReconcilableOrder{reconcilable(1, 100, model.OrderPending)},
		statuses: map[int64]model.OrderStatus{1: model.OrderPending},
		refunded: map[int64]bool{},
	}
	count := 42
	client := &fakeClient{responses: map[int64]provider.StatusInfo{
		100: {Status: "In progress", StartCount: &count},
	}}

	s := newTestScheduler(t, storage, client)
	rs, ran := s.RunOnce(context.Background())
	if !ran {
		t.Fatal("run should not be skipped")
	}

	if rs.Checked != 1 || rs.Updated != 1 || rs.Refunded != 0 {
		t.Errorf("unexpected stats: %+v", rs)
	}
	if storage.statuses[1] != model.OrderProcessing {
		t.Errorf("expected PROCESSING, got %s", storage.statuses[1])
	}
}

func TestRunOnce_TerminalStatusRefundsOnce(t *testing.T) {
	storage := &fakeStorage{
		orders:   []model.ReconcilableOrder{reconcilable(1, 100, model.OrderProcessing)},
		statuses: map[int64]model.OrderStatus{1: model.OrderProcessing},
		refunded: map[int64]bool{},
	}
	client := &fakeClient{responses: map[int64]provider.StatusInfo{
		100: {Status: "Canceled"},
	}}

	s := newTestScheduler(t, storage, client)

	// провайдер дважды отвечает одним и тем же терминальным статусом
	rs1, _ := s.RunOnce(context.Background())
	rs2, _ := s.RunOnce(context.Background())

	if rs1.Refunded != 1 {
		t.Errorf("first run should refund once, got %d", rs1.Refunded)
	}
	if rs2.Checked != 0 || rs2.Refunded != 0 {
		t.Errorf("second run should see no reconcilable orders: %+v", rs2)
	}
	if !storage.refunded[1] {
		t.Error("order should be refunded")
	}
}

func TestRunOnce_PartialOrderStaysReconcilable(t *testing.T) {
	storage := &fakeStorage{
		orders:   []model.ReconcilableOrder{reconcilable(1, 100, model.OrderPartial)},
		statuses: map[int64]model.OrderStatus{1: model.OrderPartial},
		refunded: map[int64]bool{},
	}
	client := &fakeClient{responses: map[int64]provider.StatusInfo{
		100: {Status: "Completed"},
	}}

	s := newTestScheduler(t, storage, client)
	rs, _ := s.RunOnce(context.Background())

	if rs.Checked != 1 || rs.Updated != 1 {
		t.Errorf("unexpected stats: %+v", rs)
	}
	if storage.statuses[1] != model.OrderCompleted {
		t.Errorf("partial order should still be polled to completion, got %s", storage.statuses[1])
	}
}

func TestRunOnce_UnmappedStatusLeavesOrderUnchanged(t *testing.T) {
	storage := &fakeStorage{
		orders:   []model.ReconcilableOrder{reconcilable(1, 100, model.OrderPending)},
		statuses: map[int64]model.OrderStatus{1: model.OrderPending},
		refunded: map[int64]bool{},
	}
	client := &fakeClient{responses: map[int64]provider.StatusInfo{
		100: {Status: "Awaiting moderation"},
	}}

	s := newTestScheduler(t, storage, client)
	rs, _ := s.RunOnce(context.Background())

	if rs.Unmapped != 1 || rs.Updated != 0 {
		t.Errorf("unexpected stats: %+v", rs)
	}
	if storage.statuses[1] != model.OrderPending {
		t.Errorf("order status should be unchanged, got %s", storage.statuses[1])
	}
}

func TestRunOnce_PerOrderFailureContinuesBatch(t *testing.T) {
	storage := &fakeStorage{
		orders: []model.ReconcilableOrder{
			reconcilable(1, 100, model.OrderPending),
			reconcilable(2, 200, model.OrderPending),
		},
		statuses: map[int64]model.OrderStatus{1: model.OrderPending, 2: model.OrderPending},
		refunded: map[int64]bool{},
	}
	client := &fakeClient{
		responses: map[int64]provider.StatusInfo{200: {Status: "Completed"}},
		errs:      map[int64]error{100: errors.New("connection reset")},
	}

	s := newTestScheduler(t, storage, client)
	rs, _ := s.RunOnce(context.Background())

	if rs.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", rs.Failed)
	}
	if storage.statuses[2] != model.OrderCompleted {
		t.Errorf("second order should still be reconciled, got %s", storage.statuses[2])
	}
}

func TestRunOnce_OverlapGuard(t *testing.T) {
	storage := &fakeStorage{statuses: map[int64]model.OrderStatus{}, refunded: map[int64]bool{}}
	s := newTestScheduler(t, storage, &fakeClient{})

	s.running.Store(true)
	_, ran := s.RunOnce(context.Background())
	if ran {
		t.Error("run should be skipped while another is in progress")
	}
	s.running.Store(false)

	_, ran = s.RunOnce(context.Background())
	if !ran {
		t.Error("run should proceed once the previous one finished")
	}
}

func TestRunOnce_UnknownProviderKeySkipped(t *testing.T) {
	order := reconcilable(1, 100, model.OrderPending)
	order.ProviderKey = "gone"
	storage := &fakeStorage{
		orders:   []model.ReconcilableOrder{order},
		statuses: map[int64]model.OrderStatus{1: model.OrderPending},
		refunded: map[int64]bool{},
	}

	s := newTestScheduler(t, storage, &fakeClient{})
	rs, _ := s.RunOnce(context.Background())

	if rs.Failed != 0 || rs.Updated != 0 {
		t.Errorf("unexpected stats: %+v", rs)
	}
}

func TestStatsRingBuffer(t *testing.T) {
	st := NewStats(3)
	for i := 0; i < 5; i++ {
		st.Record(RunStats{Checked: i})
	}

	history := st.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].Checked != 2 || history[2].Checked != 4 {
		t.Errorf("ring buffer should keep the newest entries: %+v", history)
	}

	last, ok := st.Last()
	if !ok || last.Checked != 4 {
		t.Errorf("unexpected last entry: %+v", last)
	}
}
