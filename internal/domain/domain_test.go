package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigurationIsValid(t *testing.T) {
	require.NoError(t, DefaultConfiguration().Validate())
}

func TestValidateRejectsReminderBeyondCycleTime(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.CycleTimes.Sight = 10 * time.Second
	cfg.ReminderTimes.Sight = 12 * time.Second

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "reminder time of sight")
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := Configuration{
		CycleTimes:     SenseDurations{Hearing: 0, Sight: 10 * time.Second, Touch: -time.Second},
		ReminderTimes:  SenseDurations{Hearing: time.Second, Sight: -time.Second},
		NumberOfCycles: 0,
		StartDelay:     -time.Second,
	}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "cycle time of hearing must be positive")
	assert.ErrorContains(t, err, "cycle time of touch must be positive")
	assert.ErrorContains(t, err, "reminder time of sight must not be negative")
	assert.ErrorContains(t, err, "start delay must not be negative")
	assert.ErrorContains(t, err, "number of cycles must be positive")
}

func TestValidateAllowsZeroCyclesWhenUnlimited(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Unlimited = true
	cfg.NumberOfCycles = 0

	assert.NoError(t, cfg.Validate())
}

func TestValidateAllowsReminderEqualToCycleTime(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.ReminderTimes = cfg.CycleTimes

	assert.NoError(t, cfg.Validate())
}

func TestSenseNextWrapsAfterTouch(t *testing.T) {
	next, wrapped := SenseHearing.Next()
	assert.Equal(t, SenseSight, next)
	assert.False(t, wrapped)

	next, wrapped = SenseTouch.Next()
	assert.Equal(t, SenseHearing, next)
	assert.True(t, wrapped)
}

func TestSenseTextRoundTrip(t *testing.T) {
	for _, sense := range AllSenses {
		text, err := sense.MarshalText()
		require.NoError(t, err)

		var parsed Sense
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, sense, parsed)
	}

	var s Sense
	assert.Error(t, s.Set("smell"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "delaying", StatusDelaying.String())
	assert.Equal(t, "illegal-status-42", Status(42).String())
}

func TestConfigurationSetParsesDurationsAndSeconds(t *testing.T) {
	cfg := DefaultConfiguration()

	require.NoError(t, cfg.Set("cycle.hearing", "1m"))
	require.NoError(t, cfg.Set("reminder.all", "2.5"))
	require.NoError(t, cfg.Set("cycles", "6"))
	require.NoError(t, cfg.Set("unlimited", "true"))
	require.NoError(t, cfg.Set("voice", " en-us "))
	require.NoError(t, cfg.Set("delay", "0"))

	assert.Equal(t, time.Minute, cfg.CycleTimes.Hearing)
	assert.Equal(t, UniformSenseDurations(2500*time.Millisecond), cfg.ReminderTimes)
	assert.Equal(t, 6, cfg.NumberOfCycles)
	assert.True(t, cfg.Unlimited)
	assert.Equal(t, "en-us", cfg.Voice)
	assert.Zero(t, cfg.StartDelay)
}

func TestConfigurationSetRejectsUnknownKey(t *testing.T) {
	cfg := DefaultConfiguration()

	assert.ErrorIs(t, cfg.Set("cycle.smell", "10"), ErrUnknownConfigurationKey)
	assert.ErrorIs(t, cfg.Set("colour", "blue"), ErrUnknownConfigurationKey)
	assert.Error(t, cfg.Set("delay", "NaN"))
}

func TestTotalDuration(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.StartDelay = 5 * time.Second
	cfg.CycleTimes = UniformSenseDurations(10 * time.Second)
	cfg.NumberOfCycles = 2

	total, bounded := cfg.TotalDuration()
	assert.True(t, bounded)
	assert.Equal(t, 65*time.Second, total)

	cfg.Unlimited = true
	_, bounded = cfg.TotalDuration()
	assert.False(t, bounded)
}

func TestTotalDurationSaturatesForHugeRuns(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.StartDelay = time.Hour
	cfg.CycleTimes = UniformSenseDurations(time.Hour)
	cfg.NumberOfCycles = math.MaxInt32

	total, bounded := cfg.TotalDuration()
	assert.True(t, bounded)
	assert.Equal(t, time.Duration(math.MaxInt64), total)

	cfg.NumberOfCycles = 1
	cfg.CycleTimes = UniformSenseDurations(time.Duration(math.MaxInt64 / 2))
	total, _ = cfg.TotalDuration()
	assert.Equal(t, time.Duration(math.MaxInt64), total)
}

func TestRunStateEnterSenseClearsFiredReminders(t *testing.T) {
	state := NewRunState("run-1")
	state.MarkFired(5 * time.Second)
	require.True(t, state.HasFired(5*time.Second))

	state.EnterSense(SenseSight)

	assert.False(t, state.HasFired(5*time.Second))
	assert.Equal(t, SenseSight, state.Sense)
	assert.Zero(t, state.ElapsedInSense)
}
