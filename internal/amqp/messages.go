package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/domain"
)

// CompareRequestMessage asks the worker to compare both tracks for a request
type CompareRequestMessage struct {
	ID        string                `json:"id"`
	Request   domain.ReturnsRequest `json:"request"`
	Timestamp time.Time             `json:"timestamp"`
}

// NewCompareRequestMessage wraps req with a fresh ID
func NewCompareRequestMessage(req domain.ReturnsRequest) *CompareRequestMessage {
	return &CompareRequestMessage{
		ID:        uuid.NewString(),
		Request:   req,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CompareRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CompareRequestMessageFromJSON decodes a request message. A missing ID is an
// error since results could not be correlated.
func CompareRequestMessageFromJSON(data []byte) (*CompareRequestMessage, error) {
	var msg CompareRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("compare request has no id")
	}
	return &msg, nil
}

// CompareResultMessage carries either a comparison or the error that
// prevented it
type CompareResultMessage struct {
	ID        string                 `json:"id"`
	Result    *compare.ComparisonSet `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewCompareResult builds the success reply for id
func NewCompareResult(id string, set *compare.ComparisonSet) *CompareResultMessage {
	return &CompareResultMessage{ID: id, Result: set, Timestamp: time.Now().UTC()}
}

// NewCompareError builds the failure reply for id
func NewCompareError(id string, err error) *CompareResultMessage {
	return &CompareResultMessage{ID: id, Error: err.Error(), Timestamp: time.Now().UTC()}
}

// ToJSON converts the message to JSON bytes
func (m *CompareResultMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CompareResultMessageFromJSON decodes a result message
func CompareResultMessageFromJSON(data []byte) (*CompareResultMessage, error) {
	var msg CompareResultMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
