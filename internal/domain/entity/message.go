package entity

import (
	"encoding/json"

	"pushkit/internal/errors"
)

// Command tags a message exchanged between the page and worker contexts.
// Every command has exactly one payload type; see the Payload implementations
// below.
type Command string

const (
	// CommandWorkerVersionRequest asks the worker for its SDK version.
	CommandWorkerVersionRequest Command = "worker.version.request"
	// CommandWorkerVersionReply carries the worker's SDK version back.
	CommandWorkerVersionReply Command = "worker.version.reply"
	// CommandSubscribeRequest delegates push subscription negotiation into
	// the worker context.
	CommandSubscribeRequest Command = "subscription.subscribe.request"
	// CommandSubscribeReply carries the negotiated raw subscription back.
	CommandSubscribeReply Command = "subscription.subscribe.reply"
)

// Payload is the sealed set of message payloads. Each implementation binds
// itself to exactly one command tag.
type Payload interface {
	Command() Command
}

// WorkerVersionRequest has no fields; the command tag alone is the request.
type WorkerVersionRequest struct{}

func (WorkerVersionRequest) Command() Command { return CommandWorkerVersionRequest }

// WorkerVersionReply reports the SDK version compiled into the worker.
type WorkerVersionReply struct {
	Version int `json:"version"`
}

func (WorkerVersionReply) Command() Command { return CommandWorkerVersionReply }

// SubscribeRequest asks the worker context to run subscription negotiation.
type SubscribeRequest struct{}

func (SubscribeRequest) Command() Command { return CommandSubscribeRequest }

// SubscribeReply returns the result of a delegated negotiation. Error holds
// the failure text when negotiation did not produce a subscription.
type SubscribeReply struct {
	Subscription *Subscription `json:"subscription,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func (SubscribeReply) Command() Command { return CommandSubscribeReply }

// Message is the envelope posted over the cross-context channel. Messages
// carry no identity and are correlated only by command tag.
type Message struct {
	Command Command         `json:"command"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps a payload into its envelope.
func NewMessage(p Payload) (Message, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return Message{}, errors.Wrapf(err, "encode %s payload", p.Command())
	}

	return Message{Command: p.Command(), Data: data}, nil
}

// DecodePayload extracts a typed payload from an envelope. The caller names
// the expected type; a tag/type mismatch surfaces as a decode error.
func DecodePayload[T Payload](m Message) (T, error) {
	var p T
	if len(m.Data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(m.Data, &p); err != nil {
		return p, errors.Wrapf(err, "decode %s payload", m.Command)
	}

	return p, nil
}
