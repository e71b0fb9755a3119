package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/ssild/internal/application"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logs logOptions
	var profile string

	rootCmd := &cobra.Command{
		Use:           "ssild",
		Short:         "Spoken reminders for sense-by-sense SSILD practice",
		Long:          "ssild walks you through cycles of hearing, sight and touch, speaking a short reminder as each sense begins, and keeps your cycle timings in named profiles.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logs.apply(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&logs.level, "log-level", defaultLogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logs.format, "log-format", defaultLogFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logs.color, "log-color", defaultLogColor, "Log colors (auto, always, never)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", application.DefaultProfile, "Configuration profile")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	app.profile = &profile

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newConfigCmd(app),
		newVoicesCmd(app),
	)

	return rootCmd
}
