package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	log "github.com/echocat/slf4g"

	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports"
)

const DefaultProfile = "default"

var ErrUnknownVoice = errors.New("unknown voice")

// ConfigService is the persistence boundary of the shell: every edit goes
// through Update which validates and saves explicitly.
type ConfigService struct {
	repo   ports.ConfigurationRepository
	voices ports.VoiceCatalog
}

func NewConfigService(repo ports.ConfigurationRepository, voices ports.VoiceCatalog) *ConfigService {
	return &ConfigService{repo: repo, voices: voices}
}

func (s *ConfigService) Load(ctx context.Context, key string) (domain.Configuration, error) {
	cfg, err := s.repo.Load(ctx, normalizeProfile(key))
	if err != nil {
		if errors.Is(err, domain.ErrConfigurationNotFound) {
			return domain.DefaultConfiguration(), nil
		}
		return domain.Configuration{}, fmt.Errorf("load configuration: %w", err)
	}

	return cfg, nil
}

func (s *ConfigService) Save(ctx context.Context, key string, cfg domain.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, normalizeProfile(key), cfg); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}

	return nil
}

func (s *ConfigService) Update(ctx context.Context, key string, edit func(*domain.Configuration) error) (domain.Configuration, error) {
	cfg, err := s.Load(ctx, key)
	if err != nil {
		return domain.Configuration{}, err
	}

	if err := edit(&cfg); err != nil {
		return domain.Configuration{}, err
	}

	if err := s.Save(ctx, key, cfg); err != nil {
		return domain.Configuration{}, err
	}

	return cfg, nil
}

type Assignment struct {
	Key   string
	Value string
}

// Set applies assignments in order and saves once.
func (s *ConfigService) Set(ctx context.Context, key string, assignments []Assignment) (domain.Configuration, error) {
	return s.Update(ctx, key, func(cfg *domain.Configuration) error {
		voiceChanged := false
		for _, assignment := range assignments {
			if err := cfg.Set(assignment.Key, assignment.Value); err != nil {
				return err
			}
			if strings.EqualFold(strings.TrimSpace(assignment.Key), "voice") {
				voiceChanged = true
			}
		}
		if voiceChanged {
			return s.CheckVoice(ctx, cfg.Voice)
		}
		return nil
	})
}

func (s *ConfigService) Reset(ctx context.Context, key string) (domain.Configuration, error) {
	cfg := domain.DefaultConfiguration()
	if err := s.Save(ctx, key, cfg); err != nil {
		return domain.Configuration{}, err
	}

	return cfg, nil
}

func (s *ConfigService) Voices(ctx context.Context) ([]domain.Voice, error) {
	if s.voices == nil {
		return nil, domain.ErrSpeechUnavailable
	}

	voices, err := s.voices.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}

	slices.SortFunc(voices, func(a, b domain.Voice) int {
		return strings.Compare(a.ID, b.ID)
	})
	return voices, nil
}

// CheckVoice accepts the empty system default and any listed voice. When the
// catalog itself cannot be read the voice is accepted.
func (s *ConfigService) CheckVoice(ctx context.Context, voice string) error {
	if voice == "" {
		return nil
	}

	voices, err := s.Voices(ctx)
	if err != nil {
		log.WithError(err).
			With("voice", voice).
			Warn("Cannot verify voice; accepting it as is.")
		return nil
	}

	for _, candidate := range voices {
		if strings.EqualFold(candidate.ID, voice) || strings.EqualFold(candidate.Name, voice) {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownVoice, voice)
}

func normalizeProfile(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultProfile
	}

	return key
}
