package chain

import (
	"errors"
	"fmt"
	"io"

	log "github.com/echocat/slf4g"

	consolespeech "github.com/bnema/ssild/internal/adapters/speech/console"
	"github.com/bnema/ssild/internal/ports"
)

// Speaker voices through the primary speaker and falls back to the secondary
// one whenever the primary fails.
type Speaker struct {
	primary  ports.Speaker
	fallback ports.Speaker
}

var _ ports.Speaker = (*Speaker)(nil)

var (
	errNilPrimarySpeaker  = errors.New("primary speaker is nil")
	errNilFallbackSpeaker = errors.New("fallback speaker is nil")
)

func NewSpeaker(primary ports.Speaker, fallback ports.Speaker) *Speaker {
	speaker, err := NewSpeakerChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return speaker
}

func NewSpeakerChecked(primary ports.Speaker, fallback ports.Speaker) (*Speaker, error) {
	if primary == nil {
		return nil, errNilPrimarySpeaker
	}
	if fallback == nil {
		return nil, errNilFallbackSpeaker
	}

	return &Speaker{primary: primary, fallback: fallback}, nil
}

// NewWithConsoleFallback prints reminders to out whenever primary fails.
func NewWithConsoleFallback(primary ports.Speaker, out io.Writer) (*Speaker, error) {
	return NewSpeakerChecked(primary, consolespeech.NewSpeaker(out))
}

func (s *Speaker) Speak(text string, voice string) error {
	err := s.primary.Speak(text, voice)
	if err == nil {
		return nil
	}

	log.WithError(err).
		With("text", text).
		Debug("Primary speaker failed; using fallback.")

	fallbackErr := s.fallback.Speak(text, voice)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary speaker failed: %w; fallback speaker failed: %w", err, fallbackErr)
}
