package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	DefaultCycleTime      = 30 * time.Second
	DefaultReminderOffset = 0 * time.Second
	DefaultStartDelay     = 10 * time.Second
	DefaultMaxCycles      = 4
)

// Configuration is copied into the scheduler when a run starts; edits made
// afterwards only apply to the next run.
type Configuration struct {
	CycleTimes     SenseDurations
	ReminderTimes  SenseDurations
	NumberOfCycles int
	Unlimited      bool
	Voice          string
	StartDelay     time.Duration
}

func DefaultConfiguration() Configuration {
	return Configuration{
		CycleTimes:     UniformSenseDurations(DefaultCycleTime),
		ReminderTimes:  UniformSenseDurations(DefaultReminderOffset),
		NumberOfCycles: DefaultMaxCycles,
		Unlimited:      false,
		Voice:          "",
		StartDelay:     DefaultStartDelay,
	}
}

func (c Configuration) Validate() error {
	var problems []error
	for _, sense := range AllSenses {
		cycle := c.CycleTimes.Of(sense)
		reminder := c.ReminderTimes.Of(sense)
		if cycle <= 0 {
			problems = append(problems, fmt.Errorf("cycle time of %s must be positive, got %s", sense, cycle))
		}
		if reminder < 0 {
			problems = append(problems, fmt.Errorf("reminder time of %s must not be negative, got %s", sense, reminder))
		} else if cycle > 0 && reminder > cycle {
			problems = append(problems, fmt.Errorf("reminder time of %s (%s) exceeds its cycle time (%s)", sense, reminder, cycle))
		}
	}
	if c.StartDelay < 0 {
		problems = append(problems, fmt.Errorf("start delay must not be negative, got %s", c.StartDelay))
	}
	if !c.Unlimited && c.NumberOfCycles <= 0 {
		problems = append(problems, fmt.Errorf("number of cycles must be positive when not unlimited, got %d", c.NumberOfCycles))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

// ReminderOffsets returns the distinct offsets within the dwell of sense at
// which a cue is spoken, in ascending order.
func (c Configuration) ReminderOffsets(sense Sense) []time.Duration {
	offsets := []time.Duration{c.ReminderTimes.Of(sense)}
	slices.Sort(offsets)
	return slices.Compact(offsets)
}

const maxDuration = time.Duration(math.MaxInt64)

// TotalDuration is the planned length of a bounded run including the start
// delay, saturating at the largest representable duration. It returns false
// for unlimited runs.
func (c Configuration) TotalDuration() (time.Duration, bool) {
	if c.Unlimited {
		return 0, false
	}

	headroom := maxDuration
	if c.StartDelay > 0 {
		headroom -= c.StartDelay
	}
	perCycle, ok := addDurations(c.CycleTimes.Hearing, c.CycleTimes.Sight, c.CycleTimes.Touch)
	cycles := time.Duration(c.NumberOfCycles)
	if !ok || (cycles > 0 && perCycle > 0 && perCycle > headroom/cycles) {
		return maxDuration, true
	}
	return c.StartDelay + cycles*perCycle, true
}

func addDurations(values ...time.Duration) (time.Duration, bool) {
	var sum time.Duration
	for _, v := range values {
		if v > 0 && sum > maxDuration-v {
			return maxDuration, false
		}
		sum += v
	}
	return sum, true
}
