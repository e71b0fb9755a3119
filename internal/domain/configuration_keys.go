package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ConfigurationKeys lists the keys accepted by Configuration.Set.
var ConfigurationKeys = []string{
	"cycle.hearing", "cycle.sight", "cycle.touch", "cycle.all",
	"reminder.hearing", "reminder.sight", "reminder.touch", "reminder.all",
	"cycles", "unlimited", "voice", "delay",
}

// Set applies a single textual edit. Durations accept Go duration syntax
// ("1m30s") or a plain number of seconds ("90", "2.5").
func (c *Configuration) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	group, rest, grouped := strings.Cut(key, ".")
	if grouped && (group == "cycle" || group == "reminder") {
		d, err := ParseSeconds(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		target := &c.CycleTimes
		if group == "reminder" {
			target = &c.ReminderTimes
		}
		if rest == "all" {
			*target = UniformSenseDurations(d)
			return nil
		}
		var sense Sense
		if err := sense.Set(rest); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownConfigurationKey, key)
		}
		target.SetOf(sense, d)
		return nil
	}

	switch key {
	case "cycles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cycles: %q is not a whole number", value)
		}
		c.NumberOfCycles = n
	case "unlimited":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("unlimited: %q is not a boolean", value)
		}
		c.Unlimited = b
	case "voice":
		c.Voice = value
	case "delay":
		d, err := ParseSeconds(value)
		if err != nil {
			return fmt.Errorf("delay: %w", err)
		}
		c.StartDelay = d
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigurationKey, key)
	}
	return nil
}

func ParseSeconds(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is neither a duration nor a number of seconds", value)
	}
	return SecondsToDuration(seconds)
}

func SecondsToDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%v is not a finite number of seconds", seconds)
	}
	if math.Abs(seconds) > math.MaxInt64/float64(time.Second) {
		return 0, fmt.Errorf("%v seconds is out of range", seconds)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}
