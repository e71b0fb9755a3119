package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	statusadapter "github.com/bnema/ssild/internal/adapters/render/status"
	"github.com/bnema/ssild/internal/application"
	"github.com/bnema/ssild/internal/domain"
)

const (
	formatText = "text"
	formatTOML = "toml"
	formatYAML = "yaml"
	formatJSON = "json"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit configuration profiles",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigResetCmd(app),
		newConfigListCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.configService.Load(cmd.Context(), app.profileKey())
			if err != nil {
				return err
			}
			return writeConfiguration(cmd.OutOrStdout(), app, cfg, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, toml, yaml, json)")

	return cmd
}

func newConfigSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value...",
		Short: "Change settings of the selected profile",
		Long: "Set changes one or more settings and saves the profile once all of them are applied. " +
			"Keys: " + strings.Join(domain.ConfigurationKeys, ", ") + ". " +
			"Times are seconds (12.5) or durations (1m30s).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args)
			if err != nil {
				return err
			}

			cfg, err := app.configService.Set(cmd.Context(), app.profileKey(), assignments)
			if err != nil {
				return err
			}
			return writeConfiguration(cmd.OutOrStdout(), app, cfg, formatText)
		},
	}
}

func newConfigResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings of the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.configService.Reset(cmd.Context(), app.profileKey())
			if err != nil {
				return err
			}
			return writeConfiguration(cmd.OutOrStdout(), app, cfg, formatText)
		},
	}
}

func newConfigListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := app.configurations.Keys(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "No saved profiles in %s.\n", app.configurations.Path())
				return err
			}
			for _, key := range keys {
				marker := " "
				if key == app.profileKey() {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func parseAssignments(args []string) ([]application.Assignment, error) {
	assignments := make([]application.Assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid setting %q: expected key=value", arg)
		}
		assignments = append(assignments, application.Assignment{Key: key, Value: value})
	}
	return assignments, nil
}

type sensesView struct {
	Hearing float64 `json:"hearing" yaml:"hearing" toml:"hearing"`
	Sight   float64 `json:"sight" yaml:"sight" toml:"sight"`
	Touch   float64 `json:"touch" yaml:"touch" toml:"touch"`
}

type configurationView struct {
	Profile        string     `json:"profile" yaml:"profile" toml:"profile"`
	CycleTimes     sensesView `json:"cycle_times" yaml:"cycle_times" toml:"cycle_times"`
	ReminderTimes  sensesView `json:"reminder_times" yaml:"reminder_times" toml:"reminder_times"`
	NumberOfCycles int        `json:"number_of_cycles" yaml:"number_of_cycles" toml:"number_of_cycles"`
	Unlimited      bool       `json:"unlimited" yaml:"unlimited" toml:"unlimited"`
	Voice          string     `json:"voice" yaml:"voice" toml:"voice"`
	StartDelay     float64    `json:"start_delay" yaml:"start_delay" toml:"start_delay"`
}

func newConfigurationView(profile string, cfg domain.Configuration) configurationView {
	senses := func(d domain.SenseDurations) sensesView {
		return sensesView{Hearing: d.Hearing.Seconds(), Sight: d.Sight.Seconds(), Touch: d.Touch.Seconds()}
	}

	return configurationView{
		Profile:        profile,
		CycleTimes:     senses(cfg.CycleTimes),
		ReminderTimes:  senses(cfg.ReminderTimes),
		NumberOfCycles: cfg.NumberOfCycles,
		Unlimited:      cfg.Unlimited,
		Voice:          cfg.Voice,
		StartDelay:     cfg.StartDelay.Seconds(),
	}
}

func writeConfiguration(out io.Writer, app *app, cfg domain.Configuration, format string) error {
	view := newConfigurationView(app.profileKey(), cfg)

	switch strings.ToLower(format) {
	case formatText:
		rendered, err := app.statusRenderer(statusadapter.Summary{
			Profile:       app.profileKey(),
			Configuration: cfg,
		}, statusadapter.RenderOptions{})
		if err != nil {
			return fmt.Errorf("render configuration: %w", err)
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	case formatTOML:
		return toml.NewEncoder(out).Encode(view)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		return fmt.Errorf("unknown format %q (expected %s, %s, %s or %s)", format, formatText, formatTOML, formatYAML, formatJSON)
	}
}
