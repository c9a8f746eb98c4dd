package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Roller moves follow-today boards onto the current day.
type Roller interface {
	RollToToday(ctx context.Context) int
}

// RegisterRollover schedules the follow-today check on c. The caller
// starts and stops the scheduler.
func RegisterRollover(c *cron.Cron, spec string, roller Roller) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if n := roller.RollToToday(context.Background()); n > 0 {
			log.Printf("rollover: moved %d board(s) to today", n)
		}
	})
}
