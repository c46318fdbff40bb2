package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/adapter/http/dto"
	"github.com/iho/tinyledger/internal/domain"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
)

type accountServiceStub struct {
	openFn        func(ctx context.Context, currency domain.Currency) (*domain.Account, error)
	getFn         func(ctx context.Context, id string) (*domain.Account, error)
	getBalanceFn  func(ctx context.Context, id string) (decimal.Decimal, error)
	getCurrencyFn func(ctx context.Context, id string) (domain.Currency, error)
}

func (s *accountServiceStub) OpenAccount(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
	return s.openFn(ctx, currency)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.getBalanceFn(ctx, id)
}

func (s *accountServiceStub) GetCurrency(ctx context.Context, id string) (domain.Currency, error) {
	return s.getCurrencyFn(ctx, id)
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Currency: domain.CurrencyEUR,
		Balance:  decimal.Zero,
	}

	var captured domain.Currency
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
			captured = currency
			return account, nil
		},
	}, testMetrics())

	body, _ := json.Marshal(dto.OpenAccountRequest{Currency: "eur"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured != domain.CurrencyEUR {
		t.Fatalf("expected currency to be normalized to EUR, got %s", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != account.ID {
		t.Fatalf("expected account ID %s, got %s", account.ID, resp.AccountID)
	}
	if !resp.Balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", resp.Balance)
	}
}

func TestAccountHandler_Open_UnsupportedCurrency(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called for an unsupported currency")
			return nil, nil
		},
	}, testMetrics())

	body, _ := json.Marshal(dto.OpenAccountRequest{Currency: "XYZ"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called for invalid payload")
			return nil, nil
		},
	}, testMetrics())

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Currency: domain.CurrencyUSD}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected id acc-1, got %s", id)
			}
			return account, nil
		},
	}, testMetrics())

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, testMetrics())

	req := httptest.NewRequest(http.MethodGet, "/accounts/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_GetBalance(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Currency: domain.CurrencyUSD,
		Balance:  decimal.RequireFromString("42.50"),
	}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return account, nil
		},
	}, testMetrics())

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(account.Balance) || resp.Currency != "USD" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
}
