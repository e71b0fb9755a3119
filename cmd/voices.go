package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/ssild/internal/domain"
)

func newVoicesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the voices of the installed speech command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var voices []domain.Voice
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Listing voices...", func(ctx context.Context) error {
				var err error
				voices, err = app.configService.Voices(ctx)
				return err
			})
			if err != nil {
				return err
			}

			return writeVoices(cmd.OutOrStdout(), voices)
		},
	}
}

func writeVoices(out io.Writer, voices []domain.Voice) error {
	if len(voices) == 0 {
		_, err := fmt.Fprintln(out, "No voices available.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tLANGUAGE")
	for _, voice := range voices {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", voice.ID, voice.Name, voice.Language)
	}
	return w.Flush()
}
