package application

import (
	"context"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/bnema/ssild/internal/ports"
)

const DefaultTickInterval = 200 * time.Millisecond

type Advancer interface {
	Advance(delta time.Duration)
}

// Driver feeds wall-clock ticks into an Advancer. A process runs a single
// driver so restarting a session never doubles the tick rate.
type Driver struct {
	clock    ports.Clock
	interval time.Duration
}

func NewDriver(clock ports.Clock, interval time.Duration) *Driver {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return &Driver{clock: clock, interval: interval}
}

func (d *Driver) Interval() time.Duration {
	return d.interval
}

func (d *Driver) Run(ctx context.Context, target Advancer) error {
	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	last := d.clock.Now()
	log.With("interval", d.interval).
		Debug("Tick driver started.")

	for {
		select {
		case <-ctx.Done():
			log.Debug("Tick driver interrupted.")
			return nil
		case now := <-ticker.C():
			delta := now.Sub(last)
			last = now
			if delta <= 0 {
				continue
			}
			target.Advance(delta)
		}
	}
}
