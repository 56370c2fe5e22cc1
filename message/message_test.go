package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amir-ae/commerce-api-lite-sub001/message"
)

type greetingWasSent struct {
	Recipient string
}

func (greetingWasSent) Name() string { return "GreetingWasSent" }

func TestMetadataWith(t *testing.T) {
	var metadata message.Metadata

	metadata = metadata.
		With("correlation_id", "77c0fa37").
		With("actor", "tester")

	assert.Equal(t, message.Metadata{
		"correlation_id": "77c0fa37",
		"actor":          "tester",
	}, metadata)
}

func TestEnvelopeRoutesByName(t *testing.T) {
	envelope := message.GenericEnvelope{
		Message: greetingWasSent{Recipient: "Anna"},
	}

	assert.Equal(t, "GreetingWasSent", envelope.Message.Name())
	assert.Nil(t, envelope.Metadata)
}
