package domain

import (
	"fmt"
	"strings"
)

type Status uint8

const (
	StatusIdle Status = iota
	StatusDelaying
	StatusRunning
	StatusPaused
	StatusCompleted
)

var AllStatuses = []Status{StatusIdle, StatusDelaying, StatusRunning, StatusPaused, StatusCompleted}

func (s Status) String() string {
	v, err := s.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-status-%d", s)
	}
	return string(v)
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusIdle:
		return []byte("idle"), nil
	case StatusDelaying:
		return []byte("delaying"), nil
	case StatusRunning:
		return []byte("running"), nil
	case StatusPaused:
		return []byte("paused"), nil
	case StatusCompleted:
		return []byte("completed"), nil
	default:
		return nil, fmt.Errorf("illegal status: %d", uint8(s))
	}
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range AllStatuses {
		if strings.EqualFold(strings.TrimSpace(string(text)), candidate.String()) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("illegal status: %s", text)
}

// Startable reports whether Start is accepted from this status.
func (s Status) Startable() bool {
	return s == StatusIdle || s == StatusCompleted
}
