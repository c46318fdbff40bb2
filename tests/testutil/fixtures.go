package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/iho/tinyledger/internal/adapter/http"
	"github.com/iho/tinyledger/internal/adapter/http/dto"
	"github.com/iho/tinyledger/internal/adapter/http/handler"
	"github.com/iho/tinyledger/internal/adapter/repository/memory"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
	"github.com/iho/tinyledger/internal/usecase"
)

// TestApp wires the full HTTP stack against an in-memory store.
type TestApp struct {
	Server *httptest.Server
	t      *testing.T
}

// NewTestApp starts an in-process server. Each call gets a fresh store,
// so tests are isolated without any cleanup between them.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	repo := memory.NewLedgerRepository()
	idGen := memory.NewULIDGenerator()
	ledgerUC := usecase.NewLedgerUseCase(repo, idGen, map[string]int{
		"USD": 2, "EUR": 2, "GBP": 2, "JPY": 0, "CHF": 2,
	})

	m := metrics.New(prometheus.NewRegistry())
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(ledgerUC, m),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC, m),
		HealthHandler:      handler.NewHealthHandler(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{Server: server, t: t}
}

// Do sends a JSON request and returns the status code and raw body.
func (a *TestApp) Do(method, path string, payload any) (int, []byte) {
	a.t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			a.t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.Server.URL+path, body)
	if err != nil {
		a.t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.Server.Client().Do(req)
	if err != nil {
		a.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		a.t.Fatalf("failed to read response body: %v", err)
	}

	return resp.StatusCode, respBody
}

// OpenAccount opens an account and fails the test on any non-201 response.
func (a *TestApp) OpenAccount(currency string) dto.AccountResponse {
	a.t.Helper()

	status, body := a.Do(http.MethodPost, "/api/v1/accounts", map[string]string{"currency": currency})
	if status != http.StatusCreated {
		a.t.Fatalf("expected 201 opening account, got %d: %s", status, body)
	}

	var account dto.AccountResponse
	if err := json.Unmarshal(body, &account); err != nil {
		a.t.Fatalf("failed to decode account: %v", err)
	}
	return account
}

// PostTransaction applies a movement and returns the status and parsed
// transaction when the movement was accepted.
func (a *TestApp) PostTransaction(accountID string, payload any) (int, *dto.TransactionResponse, []byte) {
	a.t.Helper()

	status, body := a.Do(http.MethodPost, "/api/v1/accounts/"+accountID+"/transactions", payload)
	if status != http.StatusAccepted {
		return status, nil, body
	}

	var txn dto.TransactionResponse
	if err := json.Unmarshal(body, &txn); err != nil {
		a.t.Fatalf("failed to decode transaction: %v", err)
	}
	return status, &txn, body
}

// GetBalance fetches the current balance, failing the test on non-200.
func (a *TestApp) GetBalance(accountID string) dto.BalanceResponse {
	a.t.Helper()

	status, body := a.Do(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", nil)
	if status != http.StatusOK {
		a.t.Fatalf("expected 200 fetching balance, got %d: %s", status, body)
	}

	var balance dto.BalanceResponse
	if err := json.Unmarshal(body, &balance); err != nil {
		a.t.Fatalf("failed to decode balance: %v", err)
	}
	return balance
}

// ListTransactions fetches one history page, failing the test on non-200.
func (a *TestApp) ListTransactions(accountID, query string) dto.TransactionsPageResponse {
	a.t.Helper()

	status, body := a.Do(http.MethodGet, "/api/v1/accounts/"+accountID+"/transactions"+query, nil)
	if status != http.StatusOK {
		a.t.Fatalf("expected 200 listing transactions, got %d: %s", status, body)
	}

	var page dto.TransactionsPageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		a.t.Fatalf("failed to decode page: %v", err)
	}
	return page
}
