package transaction

import (
	"time"

	"github.com/aksuite/aksuite/pkg/money"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense entry. Date is a calendar date;
// any time-of-day component is ignored by the aggregation logic.
type Transaction struct {
	ID          int
	Uid         string
	Kind        Kind
	Amount      money.Money
	Category    string
	Description string
	Emoji       string
	Date        time.Time
	// OriginRuleId is set when the transaction was materialized from a
	// recurring rule; 0 for manual entries.
	OriginRuleId int
}
