package amqp

import (
	"encoding/json"
	"time"

	"moneyapp/internal/core"
)

// ActivityMessage announces a change to a user's record. It carries the
// headline figures only; consumers never get the PIN or the history.
type ActivityMessage struct {
	Kind      string     `json:"kind"`
	User      string     `json:"user"`
	Balance   core.Money `json:"balance"`
	Savings   core.Money `json:"savings"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewActivityMessage builds the message for a.
func NewActivityMessage(a core.Activity) *ActivityMessage {
	ts := a.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return &ActivityMessage{
		Kind:      a.Kind,
		User:      a.User,
		Balance:   a.Balance,
		Savings:   a.Savings,
		Timestamp: ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON creates a message from JSON bytes
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
