package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"dario.cat/mergo"
	"github.com/chzyer/readline"
	log "github.com/echocat/slf4g"
	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/ssild/internal/adapters/render/status"
	"github.com/bnema/ssild/internal/application"
	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports"
)

type runFlags struct {
	cycleTimes    [3]string
	reminderTimes [3]string
	cycles        int
	unlimited     bool
	delay         string
	voice         string
	speech        string
	noInput       bool
	tick          time.Duration
}

func newRunCmd(app *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a practice session with the current profile",
		Long: "Run loads the selected profile, applies any flags on top of it without saving them, " +
			"and speaks a reminder as each sense begins. Type p to pause, r to resume, " +
			"t to toggle, i for the current state and s or q to stop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := app.configService.Load(ctx, app.profileKey())
			if err != nil {
				return err
			}
			if err := flags.applyTo(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("voice") {
				if err := app.configService.CheckVoice(ctx, cfg.Voice); err != nil {
					return err
				}
			}

			speaker, err := app.speaker(flags.speech, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return runSession(ctx, cmd, app, cfg, speaker, flags)
		},
	}

	for i, sense := range domain.AllSenses {
		cmd.Flags().StringVar(&flags.cycleTimes[i], sense.String(), "", fmt.Sprintf("Time spent on %s, in seconds or as a duration", sense))
		cmd.Flags().StringVar(&flags.reminderTimes[i], "reminder-"+sense.String(), "", fmt.Sprintf("Offset of the %s reminder into its time", sense))
	}
	cmd.Flags().IntVar(&flags.cycles, "cycles", 0, "Number of cycles")
	cmd.Flags().BoolVar(&flags.unlimited, "unlimited", false, "Cycle until stopped")
	cmd.Flags().StringVar(&flags.delay, "delay", "", "Delay before the first cycle")
	cmd.Flags().StringVar(&flags.voice, "voice", "", "Voice used for reminders")
	cmd.Flags().StringVar(&flags.speech, "speech", speechAuto, "Reminder output (auto, console)")
	cmd.Flags().BoolVar(&flags.noInput, "no-input", false, "Do not read control commands from stdin")
	cmd.Flags().DurationVar(&flags.tick, "tick", application.DefaultTickInterval, "Interval between scheduler ticks")

	return cmd
}

// applyTo merges the flags the user set over cfg. Zero values only win
// when their flag was given explicitly.
func (f runFlags) applyTo(cmd *cobra.Command, cfg *domain.Configuration) error {
	var overlay domain.Configuration
	var explicit []func(*domain.Configuration)

	durationFlag := func(name, raw string, set func(*domain.Configuration, time.Duration)) error {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		d, err := domain.ParseSeconds(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		set(&overlay, d)
		if d == 0 {
			explicit = append(explicit, func(c *domain.Configuration) { set(c, 0) })
		}
		return nil
	}

	for i, sense := range domain.AllSenses {
		if err := durationFlag(sense.String(), f.cycleTimes[i], func(c *domain.Configuration, d time.Duration) {
			c.CycleTimes.SetOf(sense, d)
		}); err != nil {
			return err
		}
		if err := durationFlag("reminder-"+sense.String(), f.reminderTimes[i], func(c *domain.Configuration, d time.Duration) {
			c.ReminderTimes.SetOf(sense, d)
		}); err != nil {
			return err
		}
	}
	if err := durationFlag("delay", f.delay, func(c *domain.Configuration, d time.Duration) {
		c.StartDelay = d
	}); err != nil {
		return err
	}

	if cmd.Flags().Changed("cycles") {
		overlay.NumberOfCycles = f.cycles
		if f.cycles == 0 {
			explicit = append(explicit, func(c *domain.Configuration) { c.NumberOfCycles = 0 })
		}
		if !cmd.Flags().Changed("unlimited") {
			explicit = append(explicit, func(c *domain.Configuration) { c.Unlimited = false })
		}
	}
	if cmd.Flags().Changed("unlimited") {
		unlimited := f.unlimited
		explicit = append(explicit, func(c *domain.Configuration) { c.Unlimited = unlimited })
	}
	if cmd.Flags().Changed("voice") {
		overlay.Voice = strings.TrimSpace(f.voice)
		if overlay.Voice == "" {
			explicit = append(explicit, func(c *domain.Configuration) { c.Voice = "" })
		}
	}

	if err := mergo.Merge(cfg, overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge run flags: %w", err)
	}
	for _, apply := range explicit {
		apply(cfg)
	}

	return nil
}

func runSession(ctx context.Context, cmd *cobra.Command, app *app, cfg domain.Configuration, speaker ports.Speaker, flags runFlags) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := cmd.OutOrStdout()
	var (
		finished sync.Once
		done     = make(chan struct{})
		lastMu   sync.Mutex
		last     domain.Snapshot
	)

	scheduler := application.NewScheduler(speaker, func(event application.Event) {
		if line := statusadapter.EventLine(event); line != "" {
			_, _ = fmt.Fprintln(out, line)
		}

		status := event.Snapshot.Status
		lastMu.Lock()
		if status != domain.StatusIdle {
			last = event.Snapshot
		} else {
			last.Status = domain.StatusIdle
		}
		lastMu.Unlock()

		if event.Kind == application.EventStatusChanged &&
			(status == domain.StatusCompleted || status == domain.StatusIdle) {
			finished.Do(func() { close(done) })
		}
	})

	if err := scheduler.Start(cfg); err != nil {
		return err
	}

	driver := application.NewDriver(app.clock, flags.tick)
	driverDone := make(chan error, 1)
	go func() {
		driverDone <- driver.Run(ctx, scheduler)
	}()

	if !flags.noInput {
		control, err := newRunControl(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			log.WithError(err).
				Warn("Cannot read control commands; the session runs until it completes or is interrupted.")
		} else {
			defer control.close()
			go control.serve(scheduler, out)
		}
	}

	select {
	case <-done:
	case <-ctx.Done():
		scheduler.Stop()
	}

	cancel()
	if err := <-driverDone; err != nil {
		return err
	}

	lastMu.Lock()
	snapshot := last
	lastMu.Unlock()
	if scheduler.Status() == domain.StatusCompleted {
		snapshot = scheduler.LastRun()
	}

	rendered, err := app.statusRenderer(statusadapter.Summary{
		Profile:       app.profileKey(),
		Configuration: cfg,
		Speech:        app.speechLabel(flags.speech),
		Snapshot:      &snapshot,
	}, statusadapter.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

type sessionControl interface {
	Pause()
	Resume()
	Toggle()
	Stop()
	Snapshot() domain.Snapshot
}

type runControl struct {
	rl    *readline.Instance
	stdin *readline.CancelableStdin
}

func newRunControl(in io.Reader, prompt io.Writer) (*runControl, error) {
	stdin := readline.NewCancelableStdin(in)
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "ssild> ",
		Stdin:  stdin,
		Stdout: prompt,
	})
	if err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("open control prompt: %w", err)
	}

	return &runControl{rl: rl, stdin: stdin}, nil
}

func (c *runControl) serve(session sessionControl, out io.Writer) {
	for {
		line, err := c.rl.Readline()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
				log.WithError(err).
					Debug("Control prompt closed.")
			}
			if errors.Is(err, readline.ErrInterrupt) {
				session.Stop()
			}
			return
		}
		if !applyControl(session, line, out) {
			return
		}
	}
}

// close releases a Readline call still waiting on input. readline wraps
// its Stdin, so the cancelable reader has to be closed directly.
func (c *runControl) close() {
	_ = c.stdin.Close()
	_ = c.rl.Close()
}

// applyControl executes one control line and reports whether more input
// should be read.
func applyControl(session sessionControl, line string, out io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return true
	case "p", "pause":
		session.Pause()
	case "r", "resume":
		session.Resume()
	case "t", "toggle":
		session.Toggle()
	case "i", "info":
		snapshot := session.Snapshot()
		_, _ = fmt.Fprintf(out, "%s, cycle %d, %s, %s left\n",
			snapshot.Status, snapshot.CycleIndex+1, snapshot.Sense, snapshot.RemainingInSense.Round(time.Second))
	case "s", "stop", "q", "quit":
		session.Stop()
		return false
	default:
		_, _ = fmt.Fprintf(out, "unknown command %q (p, r, t, i, s, q)\n", line)
	}
	return true
}
