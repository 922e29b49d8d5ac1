package call

import "time"

type Type string

const (
	TypeInquiry   Type = "inquiry"
	TypeSupport   Type = "support"
	TypeSales     Type = "sales"
	TypeComplaint Type = "complaint"
	TypeOther     Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInquiry, TypeSupport, TypeSales, TypeComplaint, TypeOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Call is a logged customer call. New calls start pending; the date is
// assigned at creation time.
type Call struct {
	ID         int
	Uid        string
	CallerName string
	Company    string
	Phone      string
	Email      string
	Type       Type
	Priority   Priority
	Notes      string
	FollowUp   bool
	// FollowUpDate is zero when no follow-up date was chosen.
	FollowUpDate time.Time
	Status       Status
	Date         time.Time
}
