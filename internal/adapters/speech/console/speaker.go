package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/ssild/internal/ports"
)

// Speaker prints reminders instead of voicing them.
type Speaker struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ports.Speaker = (*Speaker)(nil)

func NewSpeaker(out io.Writer) *Speaker {
	if out == nil {
		out = io.Discard
	}
	return &Speaker{out: out}
}

func (s *Speaker) Speak(text string, voice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.out, "» %s\n", text); err != nil {
		return fmt.Errorf("print reminder %q: %w", text, err)
	}

	return nil
}
