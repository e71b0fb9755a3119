package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	log "github.com/echocat/slf4g"

	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports"
)

var ErrUnavailable = fmt.Errorf("no speech command installed: %w", domain.ErrSpeechUnavailable)

type (
	lookPathFunc func(file string) (string, error)
	startFunc    func(path string, args ...string) error
	runFunc      func(ctx context.Context, path string, args ...string) (stdout string, stderr string, err error)
)

// Synthesizer speaks through the first speech command found on PATH.
type Synthesizer struct {
	engines  []engine
	lookPath lookPathFunc
	start    startFunc
	run      runFunc

	once   sync.Once
	engine engine
	path   string
	err    error
}

var (
	_ ports.Speaker      = (*Synthesizer)(nil)
	_ ports.VoiceCatalog = (*Synthesizer)(nil)
)

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		engines:  defaultEngines,
		lookPath: exec.LookPath,
		start:    startCommand,
		run:      runCommand,
	}
}

// Engine names the command in use, or "" when none is installed.
func (s *Synthesizer) Engine() string {
	if err := s.resolve(); err != nil {
		return ""
	}
	return s.engine.name
}

// Speak starts the command and returns without waiting for the audio.
func (s *Synthesizer) Speak(text string, voice string) error {
	if err := s.resolve(); err != nil {
		return err
	}

	args := s.engine.speakArgs(text, voice)
	if err := s.start(s.path, args...); err != nil {
		return formatError(s.engine.name, "speak", err, "")
	}

	return nil
}

func (s *Synthesizer) ListVoices(ctx context.Context) ([]domain.Voice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.resolve(); err != nil {
		return nil, err
	}

	stdout, stderr, err := s.run(ctx, s.path, s.engine.listArgs...)
	if err != nil {
		return nil, formatError(s.engine.name, "list voices", err, stderr)
	}

	return s.engine.parseVoices(stdout), nil
}

func (s *Synthesizer) resolve() error {
	s.once.Do(func() {
		for _, candidate := range s.engines {
			path, err := s.lookPath(candidate.name)
			if err != nil {
				if !errors.Is(err, exec.ErrNotFound) {
					log.WithError(err).
						With("command", candidate.name).
						Debug("Cannot locate speech command.")
				}
				continue
			}
			s.engine = candidate
			s.path = path
			log.With("command", candidate.name).
				With("path", path).
				Debug("Speech command located.")
			return
		}
		s.err = ErrUnavailable
	})

	return s.err
}

func startCommand(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.WithError(err).
				With("command", path).
				Debug("Speech command exited with an error.")
		}
	}()

	return nil
}

func runCommand(ctx context.Context, path string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(name string, op string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("%s %s: %w", name, op, err)
	}

	return fmt.Errorf("%s %s: %w: %s", name, op, err, stderr)
}
