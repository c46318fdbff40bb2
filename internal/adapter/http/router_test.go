package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/tinyledger/internal/adapter/http/middleware"
	"github.com/iho/tinyledger/internal/domain"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
	"github.com/iho/tinyledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected prometheus exposition output")
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/balance",
		"POST /api/v1/accounts/{id}/transactions",
		"GET /api/v1/accounts/{id}/transactions",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	m := metrics.New(prometheus.NewRegistry())

	cfg := RouterConfig{
		HealthHandler:      handler.NewHealthHandler(),
		AccountHandler:     handler.NewAccountHandler(&stubLedgerService{}, m),
		TransactionHandler: handler.NewTransactionHandler(&stubLedgerService{}, m),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubLedgerService struct{}

func (stubLedgerService) OpenAccount(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
	return &domain.Account{ID: "acc", Currency: currency}, nil
}

func (stubLedgerService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id, Currency: domain.CurrencyEUR}, nil
}

func (stubLedgerService) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (stubLedgerService) GetCurrency(ctx context.Context, id string) (domain.Currency, error) {
	return domain.CurrencyEUR, nil
}

func (stubLedgerService) MoneyMovement(ctx context.Context, input usecase.MoneyMovementInput) (*domain.Transaction, error) {
	return &domain.Transaction{Amount: input.Amount, Balance: input.Amount}, nil
}

func (stubLedgerService) GetTransactions(ctx context.Context, input usecase.GetTransactionsInput) (*domain.TransactionPage, error) {
	return &domain.TransactionPage{Page: input.Page, TotalPages: 1, Transactions: []domain.Transaction{}}, nil
}
