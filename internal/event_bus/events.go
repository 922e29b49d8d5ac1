package event_bus

import "time"

const (
	// TransactionRecordedEvent fires after a transaction is persisted, whether
	// entered manually or materialized from a recurring rule.
	TransactionRecordedEvent EventType = "transaction.recorded"
)

// TransactionRecorded carries plain values only, so subscribers do not need
// to import the feature packages.
type TransactionRecorded struct {
	UserId      int
	Uid         string
	Kind        string
	AmountCents int64
	Category    string
	Date        time.Time
	FromRule    bool
}
