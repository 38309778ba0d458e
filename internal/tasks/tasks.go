package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	// Support ticket housekeeping
	TypeTicketAutoClose = "ticket:auto_close"

	// Appointment meet housekeeping
	TypeMeetSweepExpired = "meet:sweep_expired"
)

// TicketAutoClosePayload identifies the ticket to close
type TicketAutoClosePayload struct {
	TicketID string `json:"ticket_id"`
}

// NewTicketAutoCloseTask creates a task that closes a resolved ticket after
// the grace period has passed
func NewTicketAutoCloseTask(ticketID string) (*asynq.Task, error) {
	payload, err := json.Marshal(TicketAutoClosePayload{
		TicketID: ticketID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeTicketAutoClose, payload), nil
}

// ParseTicketAutoClosePayload parses the payload from an Asynq task
func ParseTicketAutoClosePayload(task *asynq.Task) (TicketAutoClosePayload, error) {
	var payload TicketAutoClosePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}

// NewMeetSweepExpiredTask creates a task that removes meet links whose
// scheduled time has long passed
func NewMeetSweepExpiredTask() *asynq.Task {
	return asynq.NewTask(TypeMeetSweepExpired, nil)
}
