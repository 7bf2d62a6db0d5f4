package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrMissingPayload    = errors.New("missing payload")
)

// Encode serialises env into the body of one text frame.
func Encode(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}

// Decode parses one frame. Frames without an id or type are rejected.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.ID == "" || env.Type == "" {
		return Envelope{}, fmt.Errorf("%w: id and type are required", ErrMalformedEnvelope)
	}
	return env, nil
}

// DecodePayload converts a generically decoded payload into T.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	if payload == nil {
		return out, ErrMissingPayload
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return out, nil
}
