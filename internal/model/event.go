package model

import "time"

const EventSalesLoaded = "SalesLoaded"

// SalesLoadedEvent is published after a bulk load commits.
type SalesLoadedEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   SalesLoadedResult `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type SalesLoadedResult struct {
	Source    string `json:"source"`
	Read      int64  `json:"read"`
	Inserted  int64  `json:"inserted"`
	Truncated bool   `json:"truncated"`
}
