package toml

import (
	"fmt"

	"github.com/bnema/ssild/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version        int                   `toml:"version"`
	Configurations []configurationSchema `toml:"configurations"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported configurations schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// Durations are stored as seconds so the file stays editable by hand.
type configurationSchema struct {
	ID             string       `toml:"id"`
	CycleTimes     sensesSchema `toml:"cycle_times"`
	ReminderTimes  sensesSchema `toml:"reminder_times"`
	NumberOfCycles int          `toml:"number_of_cycles"`
	Unlimited      bool         `toml:"unlimited"`
	Voice          string       `toml:"voice"`
	StartDelay     float64      `toml:"start_delay"`
}

type sensesSchema struct {
	Hearing float64 `toml:"hearing"`
	Sight   float64 `toml:"sight"`
	Touch   float64 `toml:"touch"`
}

func toSchema(id string, cfg domain.Configuration) configurationSchema {
	return configurationSchema{
		ID:             id,
		CycleTimes:     toSensesSchema(cfg.CycleTimes),
		ReminderTimes:  toSensesSchema(cfg.ReminderTimes),
		NumberOfCycles: cfg.NumberOfCycles,
		Unlimited:      cfg.Unlimited,
		Voice:          cfg.Voice,
		StartDelay:     cfg.StartDelay.Seconds(),
	}
}

func fromSchema(entry configurationSchema) (domain.Configuration, error) {
	cycleTimes, err := fromSensesSchema("cycle_times", entry.CycleTimes)
	if err != nil {
		return domain.Configuration{}, err
	}
	reminderTimes, err := fromSensesSchema("reminder_times", entry.ReminderTimes)
	if err != nil {
		return domain.Configuration{}, err
	}
	startDelay, err := domain.SecondsToDuration(entry.StartDelay)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("configuration %q start_delay: %w", entry.ID, err)
	}

	return domain.Configuration{
		CycleTimes:     cycleTimes,
		ReminderTimes:  reminderTimes,
		NumberOfCycles: entry.NumberOfCycles,
		Unlimited:      entry.Unlimited,
		Voice:          entry.Voice,
		StartDelay:     startDelay,
	}, nil
}

func toSensesSchema(d domain.SenseDurations) sensesSchema {
	return sensesSchema{
		Hearing: d.Hearing.Seconds(),
		Sight:   d.Sight.Seconds(),
		Touch:   d.Touch.Seconds(),
	}
}

func fromSensesSchema(field string, s sensesSchema) (domain.SenseDurations, error) {
	var result domain.SenseDurations
	for _, entry := range []struct {
		sense   domain.Sense
		seconds float64
	}{
		{domain.SenseHearing, s.Hearing},
		{domain.SenseSight, s.Sight},
		{domain.SenseTouch, s.Touch},
	} {
		d, err := domain.SecondsToDuration(entry.seconds)
		if err != nil {
			return domain.SenseDurations{}, fmt.Errorf("%s.%s: %w", field, entry.sense, err)
		}
		result.SetOf(entry.sense, d)
	}

	return result, nil
}
