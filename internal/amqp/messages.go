package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// TaskMessage is the wire form of an aggregate task.
type TaskMessage struct {
	Task      domain.AggregateTask `json:"task"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewTaskMessage(task domain.AggregateTask) *TaskMessage {
	return &TaskMessage{Task: task, Timestamp: time.Now()}
}

// ToJSON converts the message to JSON bytes
func (m *TaskMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TaskMessageFromJSON decodes and validates a message.
func TaskMessageFromJSON(data []byte) (*TaskMessage, error) {
	var msg TaskMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	return &msg, nil
}
