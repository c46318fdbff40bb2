package memory

import "github.com/iho/tinyledger/internal/domain"

// paginate computes one history page from an immutable snapshot.
//
// The snapshot's size is the only total used anywhere in the arithmetic, so
// the slice, totalPages and nextPage always agree with each other even while
// writers keep appending to the live ledger.
func paginate(s *ledgerState, p domain.Pageable) *domain.TransactionPage {
	total := s.size
	start := (p.Page - 1) * p.Size
	end := start + p.Size

	totalPages := (total + p.Size - 1) / p.Size
	if totalPages < 1 {
		totalPages = 1
	}

	var nextPage *int
	if total > end {
		n := p.Page + 1
		nextPage = &n
	}

	// Out-of-range pages are a valid, empty result.
	if start >= total {
		return &domain.TransactionPage{
			Page:         p.Page,
			NextPage:     nil,
			TotalPages:   totalPages,
			Transactions: []domain.Transaction{},
		}
	}

	take := p.Size
	if rest := total - start; rest < take {
		take = rest
	}

	var txns []domain.Transaction
	if p.Sort == domain.SortAsc {
		// Ascending position i maps to descending index total-1-i, so the
		// requested window [start, start+take) corresponds to the descending
		// range ending at total-start. Walk that range, then reverse.
		skip := total - end
		if skip < 0 {
			skip = 0
		}
		txns = collect(s.head, skip, take)
		for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
			txns[i], txns[j] = txns[j], txns[i]
		}
	} else {
		txns = collect(s.head, start, take)
	}

	return &domain.TransactionPage{
		Page:         p.Page,
		NextPage:     nextPage,
		TotalPages:   totalPages,
		Transactions: txns,
	}
}

// collect skips then copies up to take transactions from the newest-first log.
func collect(head *logNode, skip, take int) []domain.Transaction {
	n := head
	for ; skip > 0 && n != nil; skip-- {
		n = n.next
	}

	txns := make([]domain.Transaction, 0, take)
	for ; take > 0 && n != nil; take-- {
		txns = append(txns, n.txn)
		n = n.next
	}

	return txns
}
