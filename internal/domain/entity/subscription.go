package entity

import (
	"encoding/json"

	"pushkit/internal/errors"
)

// Subscription is the normalized, persisted push subscription record. It is
// only mutated through the negotiation flow; OptedOut flips independently via
// the unsubscribe operation.
type Subscription struct {
	DeviceID          DeviceIdentity `json:"deviceId"`          // Backend-assigned identity for this installation.
	SubscriptionToken string         `json:"subscriptionToken"` // Push endpoint URL or Safari device token.
	OptedOut          bool           `json:"optedOut"`          // True once the user has unsubscribed.
}

// Serialize encodes the subscription for the persistence store.
func (s *Subscription) Serialize() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "serialize subscription")
	}

	return data, nil
}

// DeserializeSubscription decodes a subscription previously written with
// Serialize.
func DeserializeSubscription(data []byte) (*Subscription, error) {
	sub := new(Subscription)
	if err := json.Unmarshal(data, sub); err != nil {
		return nil, errors.Wrap(err, "deserialize subscription")
	}

	return sub, nil
}
