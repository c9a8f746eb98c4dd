package announce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversAndRemembers(t *testing.T) {
	bus := NewBus()

	var got []Message
	cancel := bus.Subscribe(func(m Message) { got = append(got, m) })

	bus.Announce("moved", "")
	bus.Announce("failed", Assertive)

	assert.Equal(t, []Message{
		{Text: "moved", Priority: Polite},
		{Text: "failed", Priority: Assertive},
	}, got)

	last, ok := bus.Last(Polite)
	assert.True(t, ok)
	assert.Equal(t, "moved", last.Text)

	cancel()
	bus.Announce("ignored", Polite)
	assert.Len(t, got, 2)

	last, _ = bus.Last(Polite)
	assert.Equal(t, "ignored", last.Text)
}

func TestBusLastEmpty(t *testing.T) {
	_, ok := NewBus().Last(Assertive)
	assert.False(t, ok)
}
