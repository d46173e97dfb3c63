package rpc

import "encoding/json"

// Codec serializes plain Go structs as JSON. It takes the place of the
// protobuf JSON codec, which only accepts generated messages.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (Codec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}
