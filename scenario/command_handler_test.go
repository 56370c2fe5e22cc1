package scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/scenario"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

type sendGreeting struct {
	Recipient string
}

func (sendGreeting) Name() string { return "SendGreeting" }

type greetingWasSent struct {
	Recipient string
}

func (greetingWasSent) Name() string { return "GreetingWasSent" }

var errRecipientMissing = errors.New("send greeting: no recipient specified")

func makeSendGreetingHandler(s event.Store) command.HandlerFunc[sendGreeting] {
	return func(ctx context.Context, cmd command.Envelope[sendGreeting]) error {
		if cmd.Message.Recipient == "" {
			return errRecipientMissing
		}

		_, err := s.Append(ctx,
			event.StreamID("greeting:"+cmd.Message.Recipient),
			version.CheckExact(0),
			event.ToEnvelope(greetingWasSent{Recipient: cmd.Message.Recipient}),
		)

		return err
	}
}

func TestCommandHandler(t *testing.T) {
	t.Run("committed domain events are recorded", func(t *testing.T) {
		scenario.
			CommandHandler[sendGreeting, command.HandlerFunc[sendGreeting]]().
			When(command.ToEnvelope(sendGreeting{Recipient: "Anna"})).
			Then(event.Persisted{
				StreamID:       "greeting:Anna",
				Version:        1,
				SequenceNumber: 1,
				Envelope:       event.ToEnvelope(greetingWasSent{Recipient: "Anna"}),
			}).
			AssertOn(t, makeSendGreetingHandler)
	})

	t.Run("a failed command records nothing", func(t *testing.T) {
		scenario.
			CommandHandler[sendGreeting, command.HandlerFunc[sendGreeting]]().
			When(command.ToEnvelope(sendGreeting{})).
			ThenError(errRecipientMissing).
			AssertOn(t, makeSendGreetingHandler)
	})

	t.Run("given events seed the event stream state", func(t *testing.T) {
		scenario.
			CommandHandler[sendGreeting, command.HandlerFunc[sendGreeting]]().
			Given(event.Persisted{
				StreamID:       "greeting:Anna",
				Version:        1,
				SequenceNumber: 1,
				Envelope:       event.ToEnvelope(greetingWasSent{Recipient: "Anna"}),
			}).
			When(command.ToEnvelope(sendGreeting{Recipient: "Anna"})).
			ThenError(version.ConflictError{Expected: 0, Actual: 1}).
			AssertOn(t, makeSendGreetingHandler)
	})
}
