package application

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/google/uuid"

	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports"
)

type EventKind uint8

const (
	EventStatusChanged EventKind = iota
	EventSenseStarted
	EventCueSpoken
	EventCueFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStatusChanged:
		return "status-changed"
	case EventSenseStarted:
		return "sense-started"
	case EventCueSpoken:
		return "cue-spoken"
	case EventCueFailed:
		return "cue-failed"
	default:
		return fmt.Sprintf("illegal-event-kind-%d", k)
	}
}

type Event struct {
	Kind     EventKind
	Snapshot domain.Snapshot
	Sense    domain.Sense
	Err      error
}

// Listener receives scheduler events while the scheduler lock is held. It
// must not call back into the scheduler.
type Listener func(Event)

// Scheduler owns the run state machine of a practice session. Time only
// moves through Advance, so callers decide where ticks come from.
type Scheduler struct {
	speaker  ports.Speaker
	listener Listener

	mu      sync.Mutex
	cfg     domain.Configuration
	state   domain.RunState
	lastRun domain.Snapshot
}

func NewScheduler(speaker ports.Speaker, listener Listener) *Scheduler {
	return &Scheduler{
		speaker:  speaker,
		listener: listener,
		state:    domain.NewRunState(""),
	}
}

func (s *Scheduler) Start(cfg domain.Configuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Status.Startable() {
		log.With("status", s.state.Status).
			Debug("Start ignored while a session is in progress.")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	s.cfg = cfg
	s.state = domain.NewRunState(uuid.NewString())

	log.With("runId", s.state.RunID).
		With("cycles", cfg.NumberOfCycles).
		With("unlimited", cfg.Unlimited).
		With("startDelay", cfg.StartDelay).
		Info("Session started.")

	if cfg.StartDelay > 0 {
		s.setStatus(domain.StatusDelaying)
		return nil
	}
	s.beginCycles()
	return nil
}

func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pause()
}

func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resume()
}

// Toggle pauses an active session or resumes a paused one.
func (s *Scheduler) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == domain.StatusPaused {
		s.resume()
		return
	}
	s.pause()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == domain.StatusIdle {
		return
	}

	runID := s.state.RunID
	s.cfg = domain.Configuration{}
	s.state = domain.NewRunState("")

	log.With("runId", runID).
		Info("Session stopped.")
	s.emit(Event{Kind: EventStatusChanged})
}

func (s *Scheduler) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Status
}

func (s *Scheduler) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// LastRun returns the final snapshot of the most recently completed run.
// The run state itself is reset on completion.
func (s *Scheduler) LastRun() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastRun
}

// Configuration returns the configuration of the current or last run.
func (s *Scheduler) Configuration() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cfg
}

// Advance consumes delta of practice time. Deltas are split at every
// reminder and dwell boundary so coarse ticks never skip or repeat a cue.
func (s *Scheduler) Advance(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for delta > 0 {
		switch s.state.Status {
		case domain.StatusDelaying:
			delta = s.advanceDelay(delta)
		case domain.StatusRunning:
			delta = s.advanceDwell(delta)
		default:
			return
		}
		if s.state.Status == domain.StatusRunning {
			s.dispatchDue()
		}
	}
}

func (s *Scheduler) pause() {
	switch s.state.Status {
	case domain.StatusRunning, domain.StatusDelaying:
		s.state.ResumeTo = s.state.Status
		s.setStatus(domain.StatusPaused)
	default:
		log.With("status", s.state.Status).
			Debug("Pause ignored.")
	}
}

func (s *Scheduler) resume() {
	if s.state.Status != domain.StatusPaused {
		log.With("status", s.state.Status).
			Debug("Resume ignored.")
		return
	}
	s.setStatus(s.state.ResumeTo)
}

func (s *Scheduler) advanceDelay(delta time.Duration) time.Duration {
	left := s.cfg.StartDelay - s.state.ElapsedInDelay
	if delta < left {
		s.state.ElapsedInDelay += delta
		return 0
	}

	s.state.ElapsedInDelay = s.cfg.StartDelay
	s.beginCycles()
	return delta - left
}

func (s *Scheduler) advanceDwell(delta time.Duration) time.Duration {
	// Offsets at zero of a sense entered by Start are due on the first tick.
	s.dispatchDue()

	dwell := s.cfg.CycleTimes.Of(s.state.Sense)
	target := dwell
	if next, ok := s.nextReminder(); ok && next < target {
		target = next
	}

	step := target - s.state.ElapsedInSense
	if delta < step {
		s.state.ElapsedInSense += delta
		return 0
	}

	s.state.ElapsedInSense = target
	s.dispatchDue()
	if s.state.ElapsedInSense >= dwell {
		s.nextSense()
	}
	return delta - step
}

// beginCycles enters hearing without dispatching. When Start calls it, a
// zero offset fires on the first tick; after a delay it fires at the end of
// the delay within the same Advance, like every later sense boundary.
func (s *Scheduler) beginCycles() {
	s.state.CycleIndex = 0
	s.setStatus(domain.StatusRunning)
	s.enterSense(domain.SenseHearing)
}

func (s *Scheduler) enterSense(sense domain.Sense) {
	s.state.EnterSense(sense)

	log.With("runId", s.state.RunID).
		With("cycle", s.state.CycleIndex).
		With("sense", sense).
		Debug("Sense started.")
	s.emit(Event{Kind: EventSenseStarted, Sense: sense})
}

func (s *Scheduler) nextSense() {
	next, wrapped := s.state.Sense.Next()
	if wrapped {
		s.state.CycleIndex++
		if !s.cfg.Unlimited && s.state.CycleIndex >= s.cfg.NumberOfCycles {
			s.complete()
			return
		}
	}
	s.enterSense(next)
}

func (s *Scheduler) complete() {
	s.state.ElapsedInSense = 0
	s.lastRun = s.snapshot()
	s.lastRun.Status = domain.StatusCompleted
	s.lastRun.RemainingInSense = 0

	log.With("runId", s.state.RunID).
		With("cycles", s.state.CycleIndex).
		With("cues", s.state.CuesDispatched).
		Info("Session completed.")
	s.state = domain.NewRunState("")
	s.setStatus(domain.StatusCompleted)
}

func (s *Scheduler) nextReminder() (time.Duration, bool) {
	for _, offset := range s.cfg.ReminderOffsets(s.state.Sense) {
		if offset > s.state.ElapsedInSense && !s.state.HasFired(offset) {
			return offset, true
		}
	}
	return 0, false
}

func (s *Scheduler) dispatchDue() {
	for _, offset := range s.cfg.ReminderOffsets(s.state.Sense) {
		if offset > s.state.ElapsedInSense || s.state.HasFired(offset) {
			continue
		}
		s.state.MarkFired(offset)
		s.speak(s.state.Sense)
	}
}

func (s *Scheduler) speak(sense domain.Sense) {
	s.state.CuesDispatched++

	err := errSpeakerMissing
	if s.speaker != nil {
		err = s.speaker.Speak(sense.String(), s.cfg.Voice)
	}
	if err != nil {
		log.WithError(err).
			With("runId", s.state.RunID).
			With("sense", sense).
			With("voice", s.cfg.Voice).
			Warn("Cannot speak reminder; continuing without it.")
		s.emit(Event{Kind: EventCueFailed, Sense: sense, Err: err})
		return
	}

	log.With("runId", s.state.RunID).
		With("cycle", s.state.CycleIndex).
		With("sense", sense).
		Debug("Reminder spoken.")
	s.emit(Event{Kind: EventCueSpoken, Sense: sense})
}

var errSpeakerMissing = fmt.Errorf("no speaker configured: %w", domain.ErrSpeechUnavailable)

func (s *Scheduler) setStatus(status domain.Status) {
	previous := s.state.Status
	if previous == status {
		return
	}
	s.state.Status = status

	log.With("runId", s.state.RunID).
		With("from", previous).
		With("to", status).
		Debug("Status changed.")
	s.emit(Event{Kind: EventStatusChanged})
}

func (s *Scheduler) emit(event Event) {
	if s.listener == nil {
		return
	}
	event.Snapshot = s.snapshot()
	s.listener(event)
}

func (s *Scheduler) snapshot() domain.Snapshot {
	snapshot := domain.Snapshot{
		RunID:          s.state.RunID,
		Status:         s.state.Status,
		CycleIndex:     s.state.CycleIndex,
		NumberOfCycles: s.cfg.NumberOfCycles,
		Unlimited:      s.cfg.Unlimited,
		Sense:          s.state.Sense,
		ElapsedInSense: s.state.ElapsedInSense,
		CuesDispatched: s.state.CuesDispatched,
	}

	phase := s.state.Status
	if phase == domain.StatusPaused {
		phase = s.state.ResumeTo
	}
	switch phase {
	case domain.StatusDelaying:
		snapshot.RemainingDelay = s.cfg.StartDelay - s.state.ElapsedInDelay
	case domain.StatusRunning:
		snapshot.RemainingInSense = s.cfg.CycleTimes.Of(s.state.Sense) - s.state.ElapsedInSense
	}
	return snapshot
}

// IsSpeechUnavailable reports whether err means no synthesizer could be used.
func IsSpeechUnavailable(err error) bool {
	return errors.Is(err, domain.ErrSpeechUnavailable)
}
