// Package ledger folds journal entries into balances and report slices.
//
// The balance is never stored. Every read replays the full entry set, so the
// displayed figure can always be explained from the journal rows themselves
// and there is no cached value to drift out of sync. Callers accept the O(n)
// cost per read.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/titosse/facturacao/internal/models"
)

// Balance folds entries into the net cash position: ENTRY adds, anything
// else subtracts. Amounts are stored unsigned; the sign lives in the type.
// The fold is commutative, so entry order never changes the result.
func Balance(entries []models.JournalEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if e.Type == models.EntryInflow {
			balance = balance.Add(e.Amount)
		} else {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// Sales filters the journal down to inflows, the input of the sales map
// report.
func Sales(entries []models.JournalEntry) []models.JournalEntry {
	sales := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == models.EntryInflow {
			sales = append(sales, e)
		}
	}
	return sales
}
