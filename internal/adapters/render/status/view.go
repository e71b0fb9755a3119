package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ssild/internal/application"
	"github.com/bnema/ssild/internal/domain"
)

type RenderOptions struct {
	BarWidth int
}

// Summary is what `config show` and the end of `run` print.
type Summary struct {
	Profile       string
	Configuration domain.Configuration
	Speech        string
	Snapshot      *domain.Snapshot
}

const defaultBarWidth = 24

func renderView(summary Summary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("SSILD session"),
		s.header.Render(fmt.Sprintf("profile: %s", summary.Profile)),
		s.section.Render(renderConfiguration(summary.Configuration, summary.Speech, s)),
	}

	if summary.Snapshot != nil {
		lines = append(lines, s.section.Render(renderSnapshot(*summary.Snapshot, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderConfiguration(cfg domain.Configuration, speech string, s styles) string {
	parts := make([]string, 0, len(domain.AllSenses)+5)
	for _, sense := range domain.AllSenses {
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.sense.Render(fmt.Sprintf("%-8s", sense)),
			" ",
			s.detail.Render(fmt.Sprintf("%-8s", formatDuration(cfg.CycleTimes.Of(sense)))),
			" ",
			s.key.Render(fmt.Sprintf("reminder at %s", formatDuration(cfg.ReminderTimes.Of(sense)))),
		))
	}

	parts = append(parts,
		s.detail.Render(cyclesLine(cfg)),
		s.detail.Render(fmt.Sprintf("start delay: %s", formatDuration(cfg.StartDelay))),
		s.detail.Render(fmt.Sprintf("voice: %s", voiceLabel(cfg.Voice))),
	)
	if speech != "" {
		parts = append(parts, s.detail.Render(fmt.Sprintf("speech: %s", speech)))
	}

	if err := cfg.Validate(); err != nil {
		parts = append(parts, s.warning.Render(fmt.Sprintf("[invalid] %v", err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSnapshot(snapshot domain.Snapshot, opts RenderOptions, s styles) string {
	parts := []string{
		s.detail.Render(fmt.Sprintf("status: %s", snapshot.Status)),
	}

	switch {
	case snapshot.RemainingDelay > 0:
		parts = append(parts, s.detail.Render(fmt.Sprintf("starting in %s", formatDuration(snapshot.RemainingDelay))))
	case snapshot.RemainingInSense > 0:
		dwell := snapshot.ElapsedInSense + snapshot.RemainingInSense
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.sense.Render(snapshot.Sense.String()),
			" ",
			s.key.Render(cycleLabel(snapshot)),
			" ",
			renderProgressBar(snapshot.RemainingInSense, dwell, barWidth(opts), s),
			" ",
			s.detail.Render(fmt.Sprintf("%s left", formatDuration(snapshot.RemainingInSense))),
		))
	case snapshot.Status == domain.StatusCompleted:
		parts = append(parts, s.detail.Render(fmt.Sprintf("cycles completed: %d", snapshot.CycleIndex)))
	}

	parts = append(parts, s.key.Render(fmt.Sprintf("cues: %d", snapshot.CuesDispatched)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// EventLine renders one scheduler event for the run log. Events that carry
// nothing worth printing return "".
func EventLine(event application.Event) string {
	s := newStyles()
	snapshot := event.Snapshot

	switch event.Kind {
	case application.EventStatusChanged:
		line := s.header.Render(fmt.Sprintf("status: %s", snapshot.Status))
		if snapshot.Status == domain.StatusDelaying {
			line += " " + s.detail.Render(fmt.Sprintf("(starting in %s)", formatDuration(snapshot.RemainingDelay)))
		}
		return line
	case application.EventSenseStarted:
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render(cycleLabel(snapshot)),
			" ",
			s.sense.Render(event.Sense.String()),
			" ",
			s.detail.Render(fmt.Sprintf("for %s", formatDuration(snapshot.RemainingInSense))),
		)
	case application.EventCueSpoken:
		return s.cue.Render(fmt.Sprintf("cue: %s", event.Sense))
	case application.EventCueFailed:
		if application.IsSpeechUnavailable(event.Err) {
			return s.warning.Render(fmt.Sprintf("cue skipped: %s: speech unavailable", event.Sense))
		}
		return s.warning.Render(fmt.Sprintf("cue failed: %s: %v", event.Sense, event.Err))
	default:
		return ""
	}
}

func cyclesLine(cfg domain.Configuration) string {
	perCycle := formatDuration(cfg.CycleTimes.Total())
	if cfg.Unlimited {
		return fmt.Sprintf("cycles: unlimited (%s per cycle)", perCycle)
	}

	total, _ := cfg.TotalDuration()
	return fmt.Sprintf("cycles: %d (%s per cycle, %s total)", cfg.NumberOfCycles, perCycle, formatDuration(total))
}

func cycleLabel(snapshot domain.Snapshot) string {
	cycle := snapshot.CycleIndex + 1
	if snapshot.Status == domain.StatusCompleted {
		cycle = snapshot.CycleIndex
	}
	if snapshot.Unlimited {
		return fmt.Sprintf("cycle %d", cycle)
	}

	return fmt.Sprintf("cycle %d/%d", cycle, snapshot.NumberOfCycles)
}

func voiceLabel(voice string) string {
	if strings.TrimSpace(voice) == "" {
		return "system default"
	}

	return voice
}

func barWidth(opts RenderOptions) int {
	if opts.BarWidth <= 0 {
		return defaultBarWidth
	}

	return opts.BarWidth
}

func renderProgressBar(remaining, total time.Duration, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	leftFraction := 0.0
	if total > 0 {
		leftFraction = float64(remaining) / float64(total)
	}
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	return d.Round(100 * time.Millisecond).String()
}
