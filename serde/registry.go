package serde

import (
	"encoding/json"
	"fmt"

	"github.com/amir-ae/commerce-api-lite-sub001/message"
)

// jsonRecord is the byte-level layout used by the Registry: the message name
// discriminates the concrete payload type on the way back.
type jsonRecord struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Unknown is the message returned when deserializing a record whose type has
// no registered codec, e.g. a Domain Event written by a newer schema version.
//
// Consumers that iterate heterogeneous logs should skip Unknown messages
// instead of treating them as an error, preserving forward compatibility.
type Unknown struct {
	EventType string
	Payload   json.RawMessage
}

// Name implements message.Message.
func (u Unknown) Name() string { return u.EventType }

// Registry is a serde.Bytes implementation for heterogeneous message types,
// discriminated by their message name.
//
// Each concrete type is registered upfront through serde.RegisterJSON;
// no runtime reflection is involved.
type Registry struct {
	deserializers map[string]DeserializerFunc[message.Message, []byte]
}

var (
	_ Bytes[message.Message] = (*Registry)(nil)

	payloadSerializer = NewJSONSerializer[message.Message]()
)

// NewRegistry creates a new empty message serde Registry.
func NewRegistry() *Registry {
	return &Registry{
		deserializers: make(map[string]DeserializerFunc[message.Message, []byte]),
	}
}

// RegisterJSON registers a JSON codec for the concrete message type T
// in the provided Registry.
//
// An error is returned if another codec was already registered
// under the same message name.
func RegisterJSON[T message.Message](r *Registry) error {
	var zeroValue T

	name := zeroValue.Name()
	if _, ok := r.deserializers[name]; ok {
		return fmt.Errorf("serde.Registry: message '%s' has already been registered", name)
	}

	payloadDeserializer := NewJSONDeserializer(func() T {
		var msg T
		return msg
	})

	r.deserializers[name] = func(data []byte) (message.Message, error) {
		msg, err := payloadDeserializer.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("serde.Registry: failed to deserialize '%s' payload: %w", name, err)
		}

		return msg, nil
	}

	return nil
}

// MustRegisterJSON registers a JSON codec for the concrete message type T,
// panicking on registration clashes. Intended for package-level wiring.
func MustRegisterJSON[T message.Message](r *Registry) {
	if err := RegisterJSON[T](r); err != nil {
		panic(err)
	}
}

// Serialize implements serde.Serializer.
func (r *Registry) Serialize(msg message.Message) ([]byte, error) {
	payload, err := payloadSerializer.Serialize(msg)
	if err != nil {
		return nil, fmt.Errorf("serde.Registry: failed to serialize '%s' payload: %w", msg.Name(), err)
	}

	data, err := json.Marshal(jsonRecord{
		Type:    msg.Name(),
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("serde.Registry: failed to serialize record: %w", err)
	}

	return data, nil
}

// Deserialize implements serde.Deserializer.
//
// Records with an unregistered message name are returned as serde.Unknown.
func (r *Registry) Deserialize(data []byte) (message.Message, error) {
	var record jsonRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("serde.Registry: failed to deserialize record: %w", err)
	}

	deserialize, ok := r.deserializers[record.Type]
	if !ok {
		return Unknown{
			EventType: record.Type,
			Payload:   record.Payload,
		}, nil
	}

	return deserialize(record.Payload)
}
