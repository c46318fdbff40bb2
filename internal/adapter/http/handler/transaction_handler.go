package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tinyledger/internal/adapter/http/dto"
	"github.com/iho/tinyledger/internal/domain"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
	"github.com/iho/tinyledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	MoneyMovement(ctx context.Context, input usecase.MoneyMovementInput) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, input usecase.GetTransactionsInput) (*domain.TransactionPage, error)
}

// TransactionHandler handles money movements and history queries.
type TransactionHandler struct {
	ledgerUC TransactionService
	metrics  *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC TransactionService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC, metrics: m}
}

// Create applies a signed money movement to an account. The movement is
// committed synchronously; 202 mirrors the public API contract.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.MoneyMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, mapDomainError(err), "invalid money movement", err.Error())
		return
	}

	txn, err := h.ledgerUC.MoneyMovement(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		h.metrics.TransactionsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to apply transaction", err.Error())
		return
	}

	h.metrics.TransactionsApplied.Inc()
	h.metrics.TransactionAmount.Observe(txn.Amount.Abs().InexactFloat64())

	writeJSON(w, http.StatusAccepted, dto.TransactionFromDomain(*txn))
}

// List returns one page of account history.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	page, err := parseIntQuery(r, "page", domain.DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page parameter", err.Error())
		return
	}

	size, err := parseIntQuery(r, "size", domain.DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid size parameter", err.Error())
		return
	}

	sort := domain.SortDesc
	if s := r.URL.Query().Get("sort"); s != "" {
		sort, err = domain.ParseSort(s)
		if err != nil {
			writeError(w, mapDomainError(err), "invalid sort parameter", err.Error())
			return
		}
	}

	if err := domain.ValidatePageable(domain.Pageable{Page: page, Size: size, Sort: sort}); err != nil {
		writeError(w, mapDomainError(err), "invalid pagination parameters", err.Error())
		return
	}

	result, err := h.ledgerUC.GetTransactions(r.Context(), usecase.GetTransactionsInput{
		AccountID: id,
		Page:      page,
		Size:      size,
		Sort:      sort,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	h.metrics.HistoryQueries.Inc()

	writeJSON(w, http.StatusOK, dto.TransactionsPageFromDomain(result))
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	default:
		return "internal"
	}
}
