package processor

import (
	"io"
	"log/slog"
	"os"
)

// Option configures the Processor.
type Option func(*Processor)

// WithLogger sets the logger for warnings and notices (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress sets where "[+]" progress lines are written (default os.Stdout).
func WithProgress(w io.Writer) Option {
	return func(p *Processor) {
		if w != nil {
			p.progress = w
		}
	}
}

// WithoutTimeline skips the merged timeline step.
func WithoutTimeline() Option {
	return func(p *Processor) {
		p.timeline = false
	}
}

func defaultProcessor() *Processor {
	return &Processor{
		logger:   slog.Default(),
		progress: os.Stdout,
		timeline: true,
	}
}
