package store

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blog/internal/metrics"
)

// Sweeper evicts sessions idle for longer than Idle.
type Sweeper struct {
	store Store
	idle  time.Duration
	now   func() time.Time
}

// NewSweeper builds a sweeper for st.
func NewSweeper(st Store, idle time.Duration) *Sweeper {
	return &Sweeper{store: st, idle: idle, now: time.Now}
}

// Run performs one sweep and returns the number of evicted sessions.
func (sw *Sweeper) Run() int {
	n := sw.store.Sweep(sw.now().Add(-sw.idle))
	live := sw.store.Len()
	metrics.SetSessions(live)
	if n > 0 {
		log.Info().Int("evicted", n).Int("live", live).Msg("swept idle sessions")
	}
	return n
}

// Schedule registers the sweep on c using a cron spec such as "@every 5m".
func (sw *Sweeper) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() { sw.Run() })
}
