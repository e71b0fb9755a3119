package domain

import "time"

type ReminderKey struct {
	Cycle  int
	Sense  Sense
	Offset time.Duration
}

// RunState is owned by the scheduler and never shared; callers observe it
// through Snapshot.
type RunState struct {
	RunID          string
	Status         Status
	ResumeTo       Status
	CycleIndex     int
	Sense          Sense
	ElapsedInSense time.Duration
	ElapsedInDelay time.Duration
	FiredReminders map[ReminderKey]struct{}
	CuesDispatched int
}

func NewRunState(runID string) RunState {
	return RunState{
		RunID:          runID,
		Status:         StatusIdle,
		FiredReminders: map[ReminderKey]struct{}{},
	}
}

func (s *RunState) HasFired(offset time.Duration) bool {
	_, ok := s.FiredReminders[s.reminderKey(offset)]
	return ok
}

func (s *RunState) MarkFired(offset time.Duration) {
	s.FiredReminders[s.reminderKey(offset)] = struct{}{}
}

// EnterSense resets the dwell bookkeeping for the next sense.
func (s *RunState) EnterSense(sense Sense) {
	s.Sense = sense
	s.ElapsedInSense = 0
	clear(s.FiredReminders)
}

func (s *RunState) reminderKey(offset time.Duration) ReminderKey {
	return ReminderKey{Cycle: s.CycleIndex, Sense: s.Sense, Offset: offset}
}

type Snapshot struct {
	RunID            string
	Status           Status
	CycleIndex       int
	NumberOfCycles   int
	Unlimited        bool
	Sense            Sense
	ElapsedInSense   time.Duration
	RemainingInSense time.Duration
	RemainingDelay   time.Duration
	CuesDispatched   int
}
