package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ardzk/smmpanel/internal/model"
	"github.com/go-chi/chi/v5"
)

func (s *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.ServiceID <= 0 || req.Quantity <= 0 || req.Link == "" {
		http.Error(w, "service_id, quantity and link required", http.StatusUnprocessableEntity)
		return
	}

	svc, err := s.storage.GetService(r.Context(), req.ServiceID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	order, err := s.storage.CreateOrder(r.Context(), user, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// заказ уже закоммичен, отправка провайдеру идёт отдельно
	go s.submitOrder(order, svc)

	s.writeJSON(w, http.StatusCreated, order)
}

// submitOrder runs detached from the request: the order and its debit
// are already committed, so a provider failure here compensates with
// FAILED+refund instead of rolling anything back.
func (s *Server) submitOrder(order model.Order, svc model.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, ok := s.providers[svc.ProviderKey]
	if !ok {
		s.deps.Logger.Errorf("no provider client for key %q, failing order %d", svc.ProviderKey, order.ID)
		s.failSubmission(ctx, order.ID, "provider not configured")
		return
	}

	providerOrderID, err := client.Submit(ctx, svc.ProviderID, order.Link, order.Quantity)
	if err != nil {
		s.deps.Logger.Errorf("submit order %d: %v", order.ID, err)
		s.failSubmission(ctx, order.ID, err.Error())
		return
	}

	if err := s.storage.MarkOrderSubmitted(ctx, order.ID, providerOrderID); err != nil {
		// ссылка потеряна, заказ подберёт следующий цикл выверки только
		// после ручного вмешательства — логируем громко
		s.deps.Logger.Errorf("mark order %d submitted (provider id %d): %v", order.ID, providerOrderID, err)
	}
}

func (s *Server) failSubmission(ctx context.Context, orderID int64, reason string) {
	if err := s.storage.FailOrderSubmission(ctx, orderID, reason); err != nil {
		s.deps.Logger.Errorf("fail order %d after submission error: %v", orderID, err)
	}
}

func (s *Server) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := s.storage.GetUserOrders(r.Context(), user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}

	if err := s.storage.CancelOrder(r.Context(), user, orderID); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
