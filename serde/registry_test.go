package serde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amir-ae/commerce-api-lite-sub001/serde"
)

type greetingWasSent struct {
	Greeting string
}

func (greetingWasSent) Name() string { return "GreetingWasSent" }

func TestRegistry(t *testing.T) {
	t.Run("registered messages round-trip", func(t *testing.T) {
		registry := serde.NewRegistry()
		require.NoError(t, serde.RegisterJSON[greetingWasSent](registry))

		data, err := registry.Serialize(greetingWasSent{Greeting: "hello"})
		require.NoError(t, err)

		msg, err := registry.Deserialize(data)
		require.NoError(t, err)

		assert.Equal(t, greetingWasSent{Greeting: "hello"}, msg)
	})

	t.Run("registering the same message name twice fails", func(t *testing.T) {
		registry := serde.NewRegistry()
		require.NoError(t, serde.RegisterJSON[greetingWasSent](registry))
		assert.Error(t, serde.RegisterJSON[greetingWasSent](registry))
	})

	t.Run("unregistered messages deserialize as Unknown", func(t *testing.T) {
		registry := serde.NewRegistry()
		require.NoError(t, serde.RegisterJSON[greetingWasSent](registry))

		data, err := registry.Serialize(greetingWasSent{Greeting: "hello"})
		require.NoError(t, err)

		msg, err := serde.NewRegistry().Deserialize(data)
		require.NoError(t, err)

		unknown, ok := msg.(serde.Unknown)
		require.True(t, ok)
		assert.Equal(t, "GreetingWasSent", unknown.Name())
	})
}
