package application

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spokenCue struct {
	At    time.Duration
	Text  string
	Voice string
}

type recordingSpeaker struct {
	now  *time.Duration
	cues []spokenCue
	err  error
}

func (r *recordingSpeaker) Speak(text string, voice string) error {
	r.cues = append(r.cues, spokenCue{At: *r.now, Text: text, Voice: voice})
	return r.err
}

type simulation struct {
	now       time.Duration
	speaker   *recordingSpeaker
	events    []Event
	scheduler *Scheduler
}

func newSimulation() *simulation {
	sim := &simulation{}
	sim.speaker = &recordingSpeaker{now: &sim.now}
	sim.scheduler = NewScheduler(sim.speaker, func(event Event) {
		sim.events = append(sim.events, event)
	})
	return sim
}

// run advances the scheduler in steps of tick until total simulated time
// has passed.
func (s *simulation) run(total, tick time.Duration) {
	for passed := time.Duration(0); passed < total; passed += tick {
		s.now += tick
		s.scheduler.Advance(tick)
	}
}

func (s *simulation) eventsOf(kind EventKind) []Event {
	var result []Event
	for _, event := range s.events {
		if event.Kind == kind {
			result = append(result, event)
		}
	}
	return result
}

func tenSecondConfiguration() domain.Configuration {
	return domain.Configuration{
		CycleTimes:     domain.UniformSenseDurations(10 * time.Second),
		ReminderTimes:  domain.UniformSenseDurations(5 * time.Second),
		NumberOfCycles: 2,
		Unlimited:      false,
		Voice:          "en",
		StartDelay:     0,
	}
}

func TestSchedulerTwoCyclesSpeaksSixCuesThenCompletes(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	assert.Equal(t, domain.StatusRunning, sim.scheduler.Status())

	sim.run(59*time.Second, time.Second)
	assert.Equal(t, domain.StatusRunning, sim.scheduler.Status())

	sim.run(time.Second, time.Second)
	assert.Equal(t, domain.StatusCompleted, sim.scheduler.Status())

	assert.Equal(t, []spokenCue{
		{At: 5 * time.Second, Text: "hearing", Voice: "en"},
		{At: 15 * time.Second, Text: "sight", Voice: "en"},
		{At: 25 * time.Second, Text: "touch", Voice: "en"},
		{At: 35 * time.Second, Text: "hearing", Voice: "en"},
		{At: 45 * time.Second, Text: "sight", Voice: "en"},
		{At: 55 * time.Second, Text: "touch", Voice: "en"},
	}, sim.speaker.cues)

	lastRun := sim.scheduler.LastRun()
	assert.Equal(t, domain.StatusCompleted, lastRun.Status)
	assert.NotEmpty(t, lastRun.RunID)
	assert.Equal(t, 2, lastRun.CycleIndex)
	assert.Equal(t, 6, lastRun.CuesDispatched)
	assert.Zero(t, lastRun.RemainingInSense)
}

func TestSchedulerCompletionResetsRunState(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.run(60*time.Second, time.Second)

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusCompleted, snapshot.Status)
	assert.Empty(t, snapshot.RunID)
	assert.Zero(t, snapshot.CycleIndex)
	assert.Zero(t, snapshot.CuesDispatched)
	assert.Zero(t, snapshot.ElapsedInSense)

	completed := sim.eventsOf(EventStatusChanged)
	require.NotEmpty(t, completed)
	assert.Equal(t, domain.StatusCompleted, completed[len(completed)-1].Snapshot.Status)
}

func TestSchedulerCompletedIgnoresFurtherTicks(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.run(60*time.Second, time.Second)
	before := sim.scheduler.Snapshot()

	sim.run(45*time.Second, time.Second)

	assert.Equal(t, before, sim.scheduler.Snapshot())
	assert.Len(t, sim.speaker.cues, 6)
}

func TestSchedulerSingleLargeTickSplitsAtEveryBoundary(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))

	sim.now = time.Minute
	sim.scheduler.Advance(time.Minute)

	assert.Equal(t, domain.StatusCompleted, sim.scheduler.Status())
	require.Len(t, sim.speaker.cues, 6)
	var texts []string
	for _, cue := range sim.speaker.cues {
		texts = append(texts, cue.Text)
	}
	assert.Equal(t, []string{"hearing", "sight", "touch", "hearing", "sight", "touch"}, texts)
}

func TestSchedulerCoarseTicksFireEachReminderOnce(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.ReminderTimes = domain.SenseDurations{Hearing: 3 * time.Second, Sight: 7 * time.Second, Touch: 9 * time.Second}
	require.NoError(t, sim.scheduler.Start(cfg))

	sim.run(60*time.Second, 4*time.Second)

	require.Len(t, sim.speaker.cues, 6)
	expected := []time.Duration{4, 20, 32, 36, 48, 60}
	for i, cue := range sim.speaker.cues {
		assert.Equal(t, expected[i]*time.Second, cue.At, "cue %d (%s)", i, cue.Text)
	}
}

func TestSchedulerReminderAtDwellEndFiresBeforeNextSense(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.ReminderTimes.Hearing = 10 * time.Second
	require.NoError(t, sim.scheduler.Start(cfg))

	sim.run(10*time.Second, time.Second)

	require.NotEmpty(t, sim.speaker.cues)
	assert.Equal(t, spokenCue{At: 10 * time.Second, Text: "hearing", Voice: "en"}, sim.speaker.cues[0])

	cueIndex, sightIndex := -1, -1
	for i, event := range sim.events {
		if event.Kind == EventCueSpoken && event.Sense == domain.SenseHearing && cueIndex < 0 {
			cueIndex = i
			assert.Equal(t, domain.SenseHearing, event.Snapshot.Sense)
		}
		if event.Kind == EventSenseStarted && event.Sense == domain.SenseSight && sightIndex < 0 {
			sightIndex = i
		}
	}
	require.GreaterOrEqual(t, cueIndex, 0)
	require.GreaterOrEqual(t, sightIndex, 0)
	assert.Less(t, cueIndex, sightIndex)

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.SenseSight, snapshot.Sense)
	assert.Zero(t, snapshot.ElapsedInSense)
}

func TestSchedulerZeroOffsetFiresAsSenseBegins(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.ReminderTimes = domain.UniformSenseDurations(0)
	cfg.NumberOfCycles = 1
	require.NoError(t, sim.scheduler.Start(cfg))
	assert.Empty(t, sim.speaker.cues)

	sim.run(30*time.Second, time.Second)

	assert.Equal(t, []spokenCue{
		{At: 1 * time.Second, Text: "hearing", Voice: "en"},
		{At: 10 * time.Second, Text: "sight", Voice: "en"},
		{At: 20 * time.Second, Text: "touch", Voice: "en"},
	}, sim.speaker.cues)
	assert.Equal(t, domain.StatusCompleted, sim.scheduler.Status())
}

func TestSchedulerStartThenStopDispatchesNothing(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.ReminderTimes = domain.UniformSenseDurations(0)
	require.NoError(t, sim.scheduler.Start(cfg))

	sim.scheduler.Stop()
	sim.run(time.Minute, time.Second)

	assert.Equal(t, domain.StatusIdle, sim.scheduler.Status())
	assert.Empty(t, sim.speaker.cues)
}

func TestSchedulerStopMidRunSilencesRemainingReminders(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.run(12*time.Second, time.Second)
	require.Len(t, sim.speaker.cues, 1)

	sim.scheduler.Stop()
	sim.run(time.Minute, time.Second)

	assert.Len(t, sim.speaker.cues, 1)
	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusIdle, snapshot.Status)
	assert.Zero(t, snapshot.CycleIndex)
	assert.Empty(t, snapshot.RunID)
}

func TestSchedulerUnlimitedKeepsCounting(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.Unlimited = true
	cfg.NumberOfCycles = 0
	require.NoError(t, sim.scheduler.Start(cfg))

	const cycles = 7
	sim.run(cycles*cfg.CycleTimes.Total(), time.Second)

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusRunning, snapshot.Status)
	assert.Equal(t, cycles, snapshot.CycleIndex)
	assert.Equal(t, domain.SenseHearing, snapshot.Sense)
	assert.Len(t, sim.speaker.cues, cycles*3)
}

func TestSchedulerPauseFreezesElapsedTime(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.run(7*time.Second, time.Second)

	sim.scheduler.Pause()
	require.Equal(t, domain.StatusPaused, sim.scheduler.Status())
	sim.run(10*time.Minute, time.Second)

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, 7*time.Second, snapshot.ElapsedInSense)
	assert.Equal(t, 3*time.Second, snapshot.RemainingInSense)
	assert.Equal(t, domain.SenseHearing, snapshot.Sense)

	sim.scheduler.Resume()
	require.Equal(t, domain.StatusRunning, sim.scheduler.Status())
	sim.scheduler.Advance(3 * time.Second)

	snapshot = sim.scheduler.Snapshot()
	assert.Equal(t, domain.SenseSight, snapshot.Sense)
	assert.Zero(t, snapshot.ElapsedInSense)
	assert.Len(t, sim.speaker.cues, 1)
}

func TestSchedulerPauseKeepsFiredReminders(t *testing.T) {
	sim := newSimulation()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.run(6*time.Second, time.Second)
	require.Len(t, sim.speaker.cues, 1)

	sim.scheduler.Pause()
	sim.scheduler.Resume()
	sim.run(3*time.Second, time.Second)

	assert.Len(t, sim.speaker.cues, 1)
}

func TestSchedulerStartDelayCanBePausedAndResumed(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.StartDelay = 5 * time.Second
	require.NoError(t, sim.scheduler.Start(cfg))
	require.Equal(t, domain.StatusDelaying, sim.scheduler.Status())

	sim.run(3*time.Second, time.Second)
	sim.scheduler.Pause()
	require.Equal(t, domain.StatusPaused, sim.scheduler.Status())
	assert.Equal(t, 2*time.Second, sim.scheduler.Snapshot().RemainingDelay)

	sim.run(time.Minute, time.Second)
	assert.Equal(t, domain.StatusPaused, sim.scheduler.Status())

	sim.scheduler.Resume()
	assert.Equal(t, domain.StatusDelaying, sim.scheduler.Status())

	sim.scheduler.Advance(2 * time.Second)
	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusRunning, snapshot.Status)
	assert.Equal(t, domain.SenseHearing, snapshot.Sense)
	assert.Zero(t, snapshot.ElapsedInSense)
}

func TestSchedulerDelayRemainderCarriesIntoFirstSense(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.StartDelay = 2 * time.Second
	require.NoError(t, sim.scheduler.Start(cfg))

	sim.scheduler.Advance(9 * time.Second)

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusRunning, snapshot.Status)
	assert.Equal(t, 7*time.Second, snapshot.ElapsedInSense)
	require.Len(t, sim.speaker.cues, 1)
	assert.Equal(t, "hearing", sim.speaker.cues[0].Text)
}

func TestSchedulerRejectsInvalidConfiguration(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.ReminderTimes.Sight = 12 * time.Second

	err := sim.scheduler.Start(cfg)

	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Equal(t, domain.StatusIdle, sim.scheduler.Status())
	assert.Empty(t, sim.events)
}

func TestSchedulerIgnoresInvalidTransitions(t *testing.T) {
	sim := newSimulation()

	sim.scheduler.Pause()
	sim.scheduler.Resume()
	sim.scheduler.Stop()
	assert.Equal(t, domain.StatusIdle, sim.scheduler.Status())
	assert.Empty(t, sim.events)

	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	runID := sim.scheduler.Snapshot().RunID
	require.NotEmpty(t, runID)

	sim.scheduler.Resume()
	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	assert.Equal(t, runID, sim.scheduler.Snapshot().RunID)
	assert.Equal(t, domain.StatusRunning, sim.scheduler.Status())
}

func TestSchedulerToggleAlternatesPauseAndResume(t *testing.T) {
	sim := newSimulation()
	sim.scheduler.Toggle()
	assert.Equal(t, domain.StatusIdle, sim.scheduler.Status())

	require.NoError(t, sim.scheduler.Start(tenSecondConfiguration()))
	sim.scheduler.Toggle()
	assert.Equal(t, domain.StatusPaused, sim.scheduler.Status())
	sim.scheduler.Toggle()
	assert.Equal(t, domain.StatusRunning, sim.scheduler.Status())
}

func TestSchedulerCanRestartAfterCompletion(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.NumberOfCycles = 1
	require.NoError(t, sim.scheduler.Start(cfg))
	sim.run(30*time.Second, time.Second)
	require.Equal(t, domain.StatusCompleted, sim.scheduler.Status())
	firstRun := sim.scheduler.LastRun().RunID
	require.NotEmpty(t, firstRun)

	require.NoError(t, sim.scheduler.Start(cfg))

	snapshot := sim.scheduler.Snapshot()
	assert.Equal(t, domain.StatusRunning, snapshot.Status)
	assert.NotEqual(t, firstRun, snapshot.RunID)
	assert.Zero(t, snapshot.CycleIndex)
}

func TestSchedulerConfigurationEditsDoNotAffectRunningSession(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	require.NoError(t, sim.scheduler.Start(cfg))

	cfg.CycleTimes.Hearing = time.Hour
	cfg.Voice = "de"
	sim.run(10*time.Second, time.Second)

	assert.Equal(t, domain.SenseSight, sim.scheduler.Snapshot().Sense)
	assert.Equal(t, "en", sim.scheduler.Configuration().Voice)
}

func TestSchedulerSpeechFailureDoesNotAffectTiming(t *testing.T) {
	speaker := mocks.NewMockSpeaker(t)
	var failures []Event
	scheduler := NewScheduler(speaker, func(event Event) {
		if event.Kind == EventCueFailed {
			failures = append(failures, event)
		}
	})

	speaker.EXPECT().Speak("hearing", "en").Return(domain.ErrSpeechUnavailable).Times(2)
	speaker.EXPECT().Speak("sight", "en").Return(domain.ErrSpeechUnavailable).Times(2)
	speaker.EXPECT().Speak("touch", "en").Return(domain.ErrSpeechUnavailable).Times(2)

	require.NoError(t, scheduler.Start(tenSecondConfiguration()))
	for i := 0; i < 60; i++ {
		scheduler.Advance(time.Second)
	}

	assert.Equal(t, domain.StatusCompleted, scheduler.Status())
	require.Len(t, failures, 6)
	assert.True(t, IsSpeechUnavailable(failures[0].Err))
}

func TestSchedulerWithoutSpeakerReportsUnavailableSpeech(t *testing.T) {
	var failures []Event
	scheduler := NewScheduler(nil, func(event Event) {
		if event.Kind == EventCueFailed {
			failures = append(failures, event)
		}
	})
	cfg := tenSecondConfiguration()
	cfg.NumberOfCycles = 1
	require.NoError(t, scheduler.Start(cfg))

	scheduler.Advance(30 * time.Second)

	assert.Equal(t, domain.StatusCompleted, scheduler.Status())
	require.Len(t, failures, 3)
	assert.ErrorIs(t, failures[2].Err, domain.ErrSpeechUnavailable)
	assert.Equal(t, domain.SenseTouch, failures[2].Sense)
}

func TestSchedulerPublishesStatusTransitions(t *testing.T) {
	sim := newSimulation()
	cfg := tenSecondConfiguration()
	cfg.StartDelay = time.Second
	cfg.NumberOfCycles = 1
	require.NoError(t, sim.scheduler.Start(cfg))
	sim.scheduler.Advance(5 * time.Second)
	sim.scheduler.Pause()
	sim.scheduler.Resume()
	sim.scheduler.Advance(time.Minute)
	require.NoError(t, sim.scheduler.Start(cfg))
	sim.scheduler.Stop()

	var statuses []domain.Status
	for _, event := range sim.eventsOf(EventStatusChanged) {
		statuses = append(statuses, event.Snapshot.Status)
	}
	assert.Equal(t, []domain.Status{
		domain.StatusDelaying,
		domain.StatusRunning,
		domain.StatusPaused,
		domain.StatusRunning,
		domain.StatusCompleted,
		domain.StatusDelaying,
		domain.StatusIdle,
	}, statuses)
}

type countingSpeaker struct {
	spoken atomic.Int64
}

func (c *countingSpeaker) Speak(string, string) error {
	c.spoken.Add(1)
	return nil
}

func TestSchedulerSerializesConcurrentCallers(t *testing.T) {
	speaker := &countingSpeaker{}
	scheduler := NewScheduler(speaker, nil)
	cfg := tenSecondConfiguration()
	cfg.Unlimited = true
	require.NoError(t, scheduler.Start(cfg))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				scheduler.Advance(100 * time.Millisecond)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 200 {
			scheduler.Toggle()
			_ = scheduler.Snapshot()
		}
	}()
	wg.Wait()

	snapshot := scheduler.Snapshot()
	assert.Equal(t, int(speaker.spoken.Load()), snapshot.CuesDispatched)
	assert.Contains(t, []domain.Status{domain.StatusRunning, domain.StatusPaused}, snapshot.Status)

	scheduler.Stop()
	spoken := speaker.spoken.Load()
	scheduler.Advance(time.Minute)
	assert.Equal(t, spoken, speaker.spoken.Load())
}
