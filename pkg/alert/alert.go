package alert

import (
	"encoding/json"
	"time"
)

// Alert notifies external consumers that a budget limit crossed its warning
// threshold or its cap. It is published to the message broker as JSON.
type Alert struct {
	LimitUid        string    `json:"limitId"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	CurrentSpending float64   `json:"currentSpending"`
	CapAmount       float64   `json:"capAmount"`
	PercentageUsed  float64   `json:"percentageUsed"`
	Timestamp       time.Time `json:"timestamp"`
}

func (a Alert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

func AlertFromJSON(data []byte) (Alert, error) {
	var a Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return Alert{}, err
	}
	return a, nil
}
