package domain

import (
	"fmt"
	"strings"
	"time"
)

type Sense uint8

const (
	SenseHearing Sense = iota
	SenseSight
	SenseTouch
)

// AllSenses is the fixed order a cycle walks through.
var AllSenses = Senses{SenseHearing, SenseSight, SenseTouch}

func (s Sense) String() string {
	v, err := s.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-sense-%d", s)
	}
	return string(v)
}

func (s Sense) MarshalText() ([]byte, error) {
	switch s {
	case SenseHearing:
		return []byte("hearing"), nil
	case SenseSight:
		return []byte("sight"), nil
	case SenseTouch:
		return []byte("touch"), nil
	default:
		return nil, fmt.Errorf("illegal sense: %d", uint8(s))
	}
}

func (s *Sense) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}

func (s *Sense) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "hearing", "sound":
		*s = SenseHearing
	case "sight", "vision":
		*s = SenseSight
	case "touch", "feeling":
		*s = SenseTouch
	default:
		return fmt.Errorf("unknown sense %q (expected one of %s)", plain, AllSenses)
	}
	return nil
}

// Next returns the following sense and whether the order wrapped back to hearing.
func (s Sense) Next() (Sense, bool) {
	if s >= SenseTouch {
		return SenseHearing, true
	}
	return s + 1, false
}

type Senses []Sense

func (s Senses) Strings() []string {
	result := make([]string, len(s))
	for i, v := range s {
		result[i] = v.String()
	}
	return result
}

func (s Senses) String() string {
	return strings.Join(s.Strings(), ",")
}

type SenseDurations struct {
	Hearing time.Duration
	Sight   time.Duration
	Touch   time.Duration
}

func UniformSenseDurations(d time.Duration) SenseDurations {
	return SenseDurations{Hearing: d, Sight: d, Touch: d}
}

func (d SenseDurations) Of(sense Sense) time.Duration {
	switch sense {
	case SenseHearing:
		return d.Hearing
	case SenseSight:
		return d.Sight
	case SenseTouch:
		return d.Touch
	default:
		return 0
	}
}

func (d *SenseDurations) SetOf(sense Sense, value time.Duration) {
	switch sense {
	case SenseHearing:
		d.Hearing = value
	case SenseSight:
		d.Sight = value
	case SenseTouch:
		d.Touch = value
	}
}

// Total is the length of one full cycle.
func (d SenseDurations) Total() time.Duration {
	return d.Hearing + d.Sight + d.Touch
}
