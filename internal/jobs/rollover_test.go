package jobs

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRoller struct {
	calls atomic.Int32
}

func (r *countingRoller) RollToToday(context.Context) int {
	r.calls.Add(1)
	return 1
}

func TestRegisterRollover(t *testing.T) {
	c := cron.New()
	roller := &countingRoller{}

	id, err := RegisterRollover(c, "@every 1m", roller)
	require.NoError(t, err)

	entry := c.Entry(id)
	require.True(t, entry.Valid())

	entry.Job.Run()
	assert.Equal(t, int32(1), roller.calls.Load())
}

func TestRegisterRolloverRejectsBadSpec(t *testing.T) {
	_, err := RegisterRollover(cron.New(), "every so often", &countingRoller{})
	assert.Error(t, err)
}
