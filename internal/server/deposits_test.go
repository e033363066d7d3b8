package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
	"github.com/golang/mock/gomock"
)

type fakeNotifier struct {
	notified chan model.DepositRequest
	err      error
}

func (f *fakeNotifier) NotifyDepositRequest(dep model.DepositRequest) error {
	f.notified <- dep
	return f.err
}

func TestCreateDepositHandler(t *testing.T) {
	srv, mock := setup(t)
	user := model.User{ID: 1}

	notifier := &fakeNotifier{notified: make(chan model.DepositRequest, 1)}
	srv.notifier = notifier

	mock.EXPECT().
		CreateDepositRequest(gomock.Any(), user, model.CreateDepositRequest{Amount: 20000, DepositorName: "Ivan"}).
		Return(model.DepositRequest{ID: 7, UserID: 1, Amount: 20000, DepositorName: "Ivan", Status: model.DepositPending}, nil)

	body := `{"amount":20000,"depositor_name":"Ivan"}`
	req := authenticatedRequest("POST", "/api/user/deposits", body, user)
	w := httptest.NewRecorder()

	srv.CreateDepositHandler(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	select {
	case dep := <-notifier.notified:
		if dep.ID != 7 {
			t.Errorf("unexpected deposit in notification: %+v", dep)
		}
	case <-time.After(time.Second):
		t.Error("notifier was never called")
	}
}

func TestCreateDepositHandler_NoNotifier(t *testing.T) {
	srv, mock := setup(t)
	user := model.User{ID: 1}

	mock.EXPECT().
		CreateDepositRequest(gomock.Any(), user, gomock.Any()).
		Return(model.DepositRequest{ID: 7, Status: model.DepositPending}, nil)

	body := `{"amount":100,"depositor_name":"Ivan"}`
	req := authenticatedRequest("POST", "/api/user/deposits", body, user)
	w := httptest.NewRecorder()

	srv.CreateDepositHandler(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCreateDepositHandler_Validation(t *testing.T) {
	srv, _ := setup(t)
	user := model.User{ID: 1}

	body := `{"amount":0,"depositor_name":""}`
	req := authenticatedRequest("POST", "/api/user/deposits", body, user)
	w := httptest.NewRecorder()

	srv.CreateDepositHandler(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestAdminResolveDepositHandler(t *testing.T) {
	srv, mock := setup(t)
	admin := model.User{ID: 99, Role: model.RoleAdmin}

	mock.EXPECT().
		ResolveDepositRequest(gomock.Any(), int64(7), model.DepositApprove, "ok", &admin.ID).
		Return(model.DepositRequest{ID: 7, Status: model.DepositApproved}, nil)

	body := `{"action":"APPROVE","note":"ok"}`
	req := withURLParam(authenticatedRequest("POST", "/api/admin/deposits/7/resolve", body, admin), "id", "7")
	w := httptest.NewRecorder()

	srv.AdminResolveDepositHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAdminResolveDepositHandler_AlreadyProcessed(t *testing.T) {
	srv, mock := setup(t)
	admin := model.User{ID: 99, Role: model.RoleAdmin}

	mock.EXPECT().
		ResolveDepositRequest(gomock.Any(), int64(7), model.DepositApprove, "", &admin.ID).
		Return(model.DepositRequest{ID: 7, Status: model.DepositApproved}, errs.ErrAlreadyProcessed)

	body := `{"action":"APPROVE"}`
	req := withURLParam(authenticatedRequest("POST", "/api/admin/deposits/7/resolve", body, admin), "id", "7")
	w := httptest.NewRecorder()

	srv.AdminResolveDepositHandler(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestAdminResolveDepositHandler_BadAction(t *testing.T) {
	srv, _ := setup(t)
	admin := model.User{ID: 99, Role: model.RoleAdmin}

	body := `{"action":"MAYBE"}`
	req := withURLParam(authenticatedRequest("POST", "/api/admin/deposits/7/resolve", body, admin), "id", "7")
	w := httptest.NewRecorder()

	srv.AdminResolveDepositHandler(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestAdminRefundHandler_AlreadyRefunded(t *testing.T) {
	srv, mock := setup(t)
	admin := model.User{ID: 99, Role: model.RoleAdmin}

	mock.EXPECT().
		RefundOrder(gomock.Any(), admin, int64(5), "").
		Return(errs.ErrAlreadyProcessed)

	req := withURLParam(authenticatedRequest("POST", "/api/admin/orders/5/refund", "", admin), "id", "5")
	w := httptest.NewRecorder()

	srv.AdminRefundHandler(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}
