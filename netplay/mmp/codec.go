package mmp

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrInvalidUTF8 = errors.New("payload is not valid utf-8 text")
)

// Marshal encodes a protocol message for the wire. Messages are UTF-8 JSON
// text sent over the reliable channel.
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not encode message: %w", err)
	}
	return data, nil
}

// Decode parses a server payload into the expected message type. The payload
// is validated as UTF-8 text before decoding; binary garbage from the wire
// should never reach json.Unmarshal.
func Decode[T any](data []byte) (*T, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("could not decode message: %w", err)
	}
	return &msg, nil
}
