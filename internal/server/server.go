package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ardzk/smmpanel/internal/config"
	"github.com/ardzk/smmpanel/internal/deps"
	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/middleware"
	"github.com/ardzk/smmpanel/internal/model"
	"github.com/ardzk/smmpanel/internal/provider"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type Storage interface {
	CreateUser(ctx context.Context, login, passwordHash string, role model.Role, referredBy string) error
	GetUserByLogin(ctx context.Context, login string) (model.User, string, error)
	GetUserByID(ctx context.Context, id int) (model.User, error)
	GetUserBalance(ctx context.Context, user model.User) (model.Balance, error)
	GetUserTransactions(ctx context.Context, user model.User) ([]model.Transaction, error)

	GetService(ctx context.Context, id int) (model.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error)
	UpsertProviderServices(ctx context.Context, providerKey string, services []model.Service) (int, error)

	CreateOrder(ctx context.Context, user model.User, req model.CreateOrderRequest) (model.Order, error)
	GetUserOrders(ctx context.Context, user model.User) ([]model.Order, error)
	CancelOrder(ctx context.Context, user model.User, orderID int64) error
	RefundOrder(ctx context.Context, admin model.User, orderID int64, note string) error
	MarkOrderSubmitted(ctx context.Context, orderID, providerOrderID int64) error
	FailOrderSubmission(ctx context.Context, orderID int64, reason string) error

	CreateDepositRequest(ctx context.Context, user model.User, req model.CreateDepositRequest) (model.DepositRequest, error)
	GetUserDepositRequests(ctx context.Context, user model.User) ([]model.DepositRequest, error)
	ResolveDepositRequest(ctx context.Context, id int64, action model.DepositAction, note string, actorID *int) (model.DepositRequest, error)
}

type ProviderClient interface {
	Submit(ctx context.Context, serviceProviderID int64, link string, quantity int) (int64, error)
	Services(ctx context.Context) ([]provider.ServiceInfo, error)
	Balance(ctx context.Context) (provider.BalanceInfo, error)
}

type Notifier interface {
	NotifyDepositRequest(dep model.DepositRequest) error
}

type Server struct {
	storage   Storage
	providers map[string]ProviderClient
	notifier  Notifier // nil when the relay is not configured
	config    *config.Config
	deps      *deps.Deps
}

func NewServer(storage Storage, providers map[string]ProviderClient, notifier Notifier, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		storage:   storage,
		providers: providers,
		notifier:  notifier,
		config:    config,
		deps:      deps,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware)

	router.Post("/api/user/register", srv.RegisterHandler)
	router.Post("/api/user/login", srv.LoginHandler)
	router.Get("/api/services", srv.ListServicesHandler)

	// авторизованные ручки
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.storage, srv.deps.TokenManager))

		r.Post("/api/user/orders", srv.CreateOrderHandler)
		r.Get("/api/user/orders", srv.GetOrdersHandler)
		r.Post("/api/user/orders/{id}/cancel", srv.CancelOrderHandler)
		r.Get("/api/user/balance", srv.GetBalanceHandler)
		r.Get("/api/user/transactions", srv.GetTransactionsHandler)
		r.Post("/api/user/deposits", srv.CreateDepositHandler)
		r.Get("/api/user/deposits", srv.GetDepositsHandler)

		r.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireRole(model.RoleAdmin))

			ar.Post("/api/admin/orders/{id}/refund", srv.AdminRefundHandler)
			ar.Post("/api/admin/deposits/{id}/resolve", srv.AdminResolveDepositHandler)
			ar.Post("/api/admin/services/sync", srv.AdminSyncServicesHandler)
			ar.Get("/api/admin/provider/balance", srv.AdminProviderBalanceHandler)
		})
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, errs.ErrInvalidState):
		http.Error(w, "invalid state", http.StatusConflict)
	case errors.Is(err, errs.ErrInsufficientBalance):
		http.Error(w, "insufficient balance", http.StatusPaymentRequired)
	case errors.Is(err, errs.ErrNotAuthorized):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, errs.ErrAlreadyProcessed):
		http.Error(w, "already processed", http.StatusConflict)
	case errors.Is(err, errs.ErrUpstreamFailure):
		http.Error(w, "upstream failure", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.deps.Logger.Errorf("encode response: %v", err)
	}
}

func requestUser(r *http.Request) (model.User, bool) {
	user, ok := r.Context().Value(middleware.UserContextKey).(model.User)
	return user, ok
}

func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "hash error", http.StatusInternalServerError)
		return
	}

	err = s.storage.CreateUser(r.Context(), creds.Login, string(hash), model.RoleUser, creds.ReferredBy)
	if err != nil {
		if errors.Is(err, errs.ErrLoginAlreadyExists) {
			http.Error(w, "login taken", http.StatusConflict)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	user, _, err := s.storage.GetUserByLogin(r.Context(), creds.Login)
	if err != nil {
		http.Error(w, "failed to fetch user", http.StatusInternalServerError)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	user, hash, err := s.storage.GetUserByLogin(r.Context(), creds.Login)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	services, err := s.storage.ListServices(r.Context(), true)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(services) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, http.StatusOK, services)
}

func (s *Server) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := s.storage.GetUserBalance(r.Context(), user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, balance)
}

func (s *Server) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	transactions, err := s.storage.GetUserTransactions(r.Context(), user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, http.StatusOK, transactions)
}
