package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ardzk/smmpanel/internal/model"
	"github.com/ardzk/smmpanel/internal/provider"
	"github.com/go-chi/chi/v5"
)

func (s *Server) AdminRefundHandler(w http.ResponseWriter, r *http.Request) {
	admin, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	// тело опционально
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := s.storage.RefundOrder(r.Context(), admin, orderID, req.Note); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// AdminResolveDepositHandler is the admin-console adapter around the
// same resolve operation the telegram relay calls.
func (s *Server) AdminResolveDepositHandler(w http.ResponseWriter, r *http.Request) {
	admin, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	depositID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad deposit id", http.StatusBadRequest)
		return
	}

	var req model.ResolveDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Action != model.DepositApprove && req.Action != model.DepositReject {
		http.Error(w, "action must be APPROVE or REJECT", http.StatusUnprocessableEntity)
		return
	}

	dep, err := s.storage.ResolveDepositRequest(r.Context(), depositID, req.Action, req.Note, &admin.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dep)
}

func (s *Server) AdminSyncServicesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProviderKey string `json:"provider_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProviderKey == "" {
		http.Error(w, "provider_key required", http.StatusBadRequest)
		return
	}

	client, ok := s.providers[req.ProviderKey]
	if !ok {
		http.Error(w, "unknown provider", http.StatusNotFound)
		return
	}

	infos, err := client.Services(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	services := make([]model.Service, 0, len(infos))
	for _, info := range infos {
		services = append(services, model.Service{
			Name:        info.Name,
			Price:       provider.PriceFromRate(info.Rate),
			MinQuantity: info.Min,
			MaxQuantity: info.Max,
			ProviderID:  info.ID,
		})
	}

	count, err := s.storage.UpsertProviderServices(r.Context(), req.ProviderKey, services)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int{"synced": count})
}

func (s *Server) AdminProviderBalanceHandler(w http.ResponseWriter, r *http.Request) {
	providerKey := r.URL.Query().Get("provider")
	if providerKey == "" {
		http.Error(w, "provider query param required", http.StatusBadRequest)
		return
	}

	client, ok := s.providers[providerKey]
	if !ok {
		http.Error(w, "unknown provider", http.StatusNotFound)
		return
	}

	balance, err := client.Balance(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, balance)
}
