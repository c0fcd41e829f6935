package entities

import (
	"time"

	"github.com/google/uuid"
)

// CaseEventType represents the type of case event
type CaseEventType string

const (
	CaseEventTypeStatusChange   CaseEventType = "status_change"
	CaseEventTypeTranscriptSet  CaseEventType = "transcript_set"
	CaseEventTypeResultReplaced CaseEventType = "result_replaced"
)

// CaseEvent represents a case state change for display layers to react to
type CaseEvent struct {
	ID        string        `json:"id"`
	CaseID    string        `json:"case_id"`
	CaseName  string        `json:"case_name"`
	EventType CaseEventType `json:"event_type"`
	Status    Status        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewCaseEvent creates a new case event
func NewCaseEvent(c *Case, eventType CaseEventType) *CaseEvent {
	event := &CaseEvent{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		CaseName:  c.Name,
		EventType: eventType,
		Status:    c.Status,
		Timestamp: time.Now(),
	}
	if c.Result != nil {
		event.Error = c.Result.Error
	}
	return event
}
