package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	statusadapter "github.com/bnema/ssild/internal/adapters/render/status"
	tomlrepo "github.com/bnema/ssild/internal/adapters/repo/toml"
	chainspeech "github.com/bnema/ssild/internal/adapters/speech/chain"
	commandspeech "github.com/bnema/ssild/internal/adapters/speech/command"
	consolespeech "github.com/bnema/ssild/internal/adapters/speech/console"
	"github.com/bnema/ssild/internal/application"
	"github.com/bnema/ssild/internal/ports"
)

const (
	speechAuto    = "auto"
	speechConsole = "console"
)

type app struct {
	configService  *application.ConfigService
	configurations *tomlrepo.Repository
	synthesizer    *commandspeech.Synthesizer
	clock          ports.Clock
	statusRenderer func(statusadapter.Summary, statusadapter.RenderOptions) (string, error)
	profile        *string
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire configuration repository: %w", err)
	}

	synth := commandspeech.NewSynthesizer()

	return &app{
		configService:  application.NewConfigService(repo, synth),
		configurations: repo,
		synthesizer:    synth,
		clock:          ports.SystemClock{},
		statusRenderer: statusadapter.Render,
	}, nil
}

func (a *app) profileKey() string {
	if a.profile == nil || *a.profile == "" {
		return application.DefaultProfile
	}
	return *a.profile
}

// speaker builds the reminder speaker for a run writing fallback cues to out.
func (a *app) speaker(mode string, out io.Writer) (ports.Speaker, error) {
	switch mode {
	case speechConsole:
		return consolespeech.NewSpeaker(out), nil
	case speechAuto, "":
		speaker, err := chainspeech.NewWithConsoleFallback(a.synthesizer, out)
		if err != nil {
			return nil, fmt.Errorf("wire speaker chain: %w", err)
		}
		return speaker, nil
	default:
		return nil, fmt.Errorf("unknown speech mode %q (expected %s or %s)", mode, speechAuto, speechConsole)
	}
}

func (a *app) speechLabel(mode string) string {
	if mode == speechConsole {
		return speechConsole
	}
	if engine := a.synthesizer.Engine(); engine != "" {
		return engine
	}
	return speechConsole
}
