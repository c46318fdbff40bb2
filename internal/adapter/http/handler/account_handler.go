package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/adapter/http/dto"
	"github.com/iho/tinyledger/internal/domain"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, currency domain.Currency) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetBalance(ctx context.Context, id string) (decimal.Decimal, error)
	GetCurrency(ctx context.Context, id string) (domain.Currency, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	ledgerUC AccountService
	metrics  *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC, metrics: m}
}

// Open opens a new account with the requested currency.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid currency", err.Error())
		return
	}

	account, err := h.ledgerUC.OpenAccount(r.Context(), currency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open account", err.Error())
		return
	}

	h.metrics.AccountsOpened.Inc()

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.ledgerUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetBalance returns the current committed balance of an account.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.ledgerUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Balance:  account.Balance,
		Currency: account.Currency.String(),
	})
}
