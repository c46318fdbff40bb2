package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
)

// LedgerRepository is the in-memory single source of truth for all ledgers.
//
// Each account carries its own mutex, so applies on the same account are
// serialized while different accounts never contend. Committed state is
// published through an atomic pointer to an immutable snapshot (balance,
// newest-first log head, log length), which gives readers and pagination a
// wait-free, never-torn view: an append becomes visible only when the whole
// new snapshot is swapped in.
type LedgerRepository struct {
	accounts sync.Map // account ID -> *ledger
	now      func() time.Time
}

// ledger is the per-account unit of contention.
type ledger struct {
	currency  domain.Currency
	createdAt time.Time

	mu    sync.Mutex // serializes Apply on this account only
	state atomic.Pointer[ledgerState]
}

// ledgerState is one committed snapshot. It is never mutated after publish.
type ledgerState struct {
	balance decimal.Decimal
	head    *logNode // newest first
	size    int
}

// logNode is one link of the persistent transaction log. Prepending builds a
// new head without touching nodes older snapshots still point at.
type logNode struct {
	txn  domain.Transaction
	next *logNode
}

// NewLedgerRepository creates an empty in-memory ledger store.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{now: time.Now}
}

// Create inserts a zero-balance ledger for the account. If the ID already
// exists the call is an idempotent no-op and the existing ledger wins.
func (r *LedgerRepository) Create(ctx context.Context, account *domain.Account) error {
	l := &ledger{
		currency:  account.Currency,
		createdAt: account.CreatedAt,
	}
	l.state.Store(&ledgerState{balance: decimal.Zero})

	r.accounts.LoadOrStore(account.ID, l)

	return nil
}

// GetByID returns a view of the account at its current committed state.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	l, err := r.ledger(id)
	if err != nil {
		return nil, err
	}

	s := l.state.Load()

	return &domain.Account{
		ID:        id,
		Currency:  l.currency,
		Balance:   s.balance,
		CreatedAt: l.createdAt,
	}, nil
}

// Apply atomically applies a signed amount to the account balance and appends
// the resulting transaction to the log. The read of the current balance, the
// negativity check and the publish of the new snapshot happen under the
// account's mutex, so two contending overdrafts can never both pass the check
// against the same stale balance.
func (r *LedgerRepository) Apply(ctx context.Context, id string, amount decimal.Decimal, description *string) (*domain.Transaction, error) {
	l, err := r.ledger(id)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.state.Load()

	newBalance := cur.balance.Add(amount)
	if newBalance.IsNegative() {
		return nil, domain.ErrInsufficientFunds
	}

	txn := domain.Transaction{
		Timestamp:   r.now().UTC(),
		Description: description,
		Amount:      amount,
		Balance:     newBalance,
	}

	l.state.Store(&ledgerState{
		balance: newBalance,
		head:    &logNode{txn: txn, next: cur.head},
		size:    cur.size + 1,
	})

	return &txn, nil
}

// ListTransactions answers a history query against a single snapshot of the
// log: metadata and slice are computed from one atomic load, so appends that
// land during the query affect neither.
func (r *LedgerRepository) ListTransactions(ctx context.Context, id string, p domain.Pageable) (*domain.TransactionPage, error) {
	l, err := r.ledger(id)
	if err != nil {
		return nil, err
	}

	return paginate(l.state.Load(), p), nil
}

func (r *LedgerRepository) ledger(id string) (*ledger, error) {
	v, ok := r.accounts.Load(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return v.(*ledger), nil
}
