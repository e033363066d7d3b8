package server

import (
	"encoding/json"
	"net/http"

	"github.com/ardzk/smmpanel/internal/model"
)

func (s *Server) CreateDepositHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req model.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 || req.DepositorName == "" {
		http.Error(w, "amount and depositor_name required", http.StatusUnprocessableEntity)
		return
	}

	dep, err := s.storage.CreateDepositRequest(r.Context(), user, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// уведомление не критично: заявка уже создана
	if s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyDepositRequest(dep); err != nil {
				s.deps.Logger.Warnf("notify deposit request %d: %v", dep.ID, err)
			}
		}()
	}

	s.writeJSON(w, http.StatusCreated, dep)
}

func (s *Server) GetDepositsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deposits, err := s.storage.GetUserDepositRequests(r.Context(), user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(deposits) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, http.StatusOK, deposits)
}
