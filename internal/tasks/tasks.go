package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	// Sent after a successful registration
	TypeIdentityWelcome = "identity:welcome"
)

// WelcomePayload is the payload for the welcome task
type WelcomePayload struct {
	UserID string `json:"user_id"`
}

// NewIdentityWelcomeTask creates a task to welcome a freshly registered user
func NewIdentityWelcomeTask(userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomePayload{
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeIdentityWelcome, payload), nil
}

// ParseWelcomePayload parses a welcome task payload from an Asynq task
func ParseWelcomePayload(task *asynq.Task) (WelcomePayload, error) {
	var payload WelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}
