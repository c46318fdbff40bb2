package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tinyledger/tests/testutil"
)

func TestTransactionHistoryPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := testutil.NewTestApp(t)
	account := app.OpenAccount("EUR")

	// 25 deposits of 1.00 each, described tx 1 through tx 25 in apply order.
	for i := 1; i <= 25; i++ {
		status, _, body := app.PostTransaction(account.AccountID, map[string]any{
			"amount":      json.RawMessage("1.00"),
			"description": fmt.Sprintf("tx %d", i),
		})
		require.Equal(t, http.StatusAccepted, status, "body: %s", body)
	}

	t.Run("default page is newest first", func(t *testing.T) {
		page := app.ListTransactions(account.AccountID, "")

		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 2, *page.NextPage)
		require.Len(t, page.Transactions, 10)
		assert.Equal(t, "tx 25", *page.Transactions[0].Description)
		assert.Equal(t, "tx 16", *page.Transactions[9].Description)
	})

	t.Run("last page is short and has no next", func(t *testing.T) {
		page := app.ListTransactions(account.AccountID, "?page=3")

		assert.Nil(t, page.NextPage)
		require.Len(t, page.Transactions, 5)
		assert.Equal(t, "tx 5", *page.Transactions[0].Description)
		assert.Equal(t, "tx 1", *page.Transactions[4].Description)
	})

	t.Run("ascending order pages from the oldest entry", func(t *testing.T) {
		page := app.ListTransactions(account.AccountID, "?sort=ASC&size=10")

		require.Len(t, page.Transactions, 10)
		assert.Equal(t, "tx 1", *page.Transactions[0].Description)
		assert.Equal(t, "tx 10", *page.Transactions[9].Description)

		last := app.ListTransactions(account.AccountID, "?sort=ASC&size=10&page=3")
		require.Len(t, last.Transactions, 5)
		assert.Equal(t, "tx 21", *last.Transactions[0].Description)
		assert.Equal(t, "tx 25", *last.Transactions[4].Description)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page := app.ListTransactions(account.AccountID, "?page=9")

		assert.Empty(t, page.Transactions)
		assert.Nil(t, page.NextPage)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("invalid paging parameters are rejected", func(t *testing.T) {
		for _, query := range []string{"?page=0", "?size=0", "?size=101", "?sort=SIDEWAYS", "?page=abc"} {
			status, body := app.Do(http.MethodGet, "/api/v1/accounts/"+account.AccountID+"/transactions"+query, nil)
			assert.Equal(t, http.StatusBadRequest, status, "query %s body: %s", query, body)
		}
	})

	t.Run("running balances are consistent within a page", func(t *testing.T) {
		page := app.ListTransactions(account.AccountID, "?size=25")

		require.Len(t, page.Transactions, 25)
		for i := 0; i < len(page.Transactions)-1; i++ {
			newer, older := page.Transactions[i], page.Transactions[i+1]
			assert.True(t, newer.Balance.Sub(newer.Amount).Equal(older.Balance),
				"balance chain broken between entries %d and %d", i, i+1)
		}
	})
}
