package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvdk01/trove-counter/internal/application"
	"github.com/dvdk01/trove-counter/internal/counter"
	"github.com/dvdk01/trove-counter/internal/render"
	"github.com/dvdk01/trove-counter/internal/schema"
	log "github.com/sirupsen/logrus"
)

const DefaultInterval = 5 * time.Second

type processor struct {
	counter     counter.Counter
	renderer    *render.Renderer
	application application.Application
	query       schema.Query
	variant     schema.Variant
	interval    time.Duration
}

func New(c counter.Counter, display application.Application, base schema.Query, variant schema.Variant, interval time.Duration) *processor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &processor{
		counter:     c,
		renderer:    render.New(),
		application: display,
		query:       variant.Query(base),
		variant:     variant,
		interval:    interval,
	}
}

// Run polls until ctx is cancelled. Cancellation is a normal stop and
// returns nil; any other failure ends the loop and is returned.
func (p *processor) Run(ctx context.Context) error {
	logger := log.WithFields(log.Fields{"variant": p.variant.Name, "interval": p.interval})
	logger.Info("polling started")

	for {
		if ctx.Err() != nil {
			logger.Info("polling stopped")
			return nil
		}

		display, err := p.Once(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				logger.Info("polling stopped")
				return nil
			}
			return err
		}

		if err := p.application.Clear(); err != nil {
			return fmt.Errorf("clear display: %w", err)
		}
		if err := p.application.Render(display); err != nil {
			return fmt.Errorf("render display: %w", err)
		}
		logger.WithField("total", display.Count).Debug("display updated")

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("polling stopped")
			return nil
		case <-timer.C:
		}
	}
}

// Once fetches the current total and renders it without touching the display.
func (p *processor) Once(ctx context.Context) (schema.Display, error) {
	total, err := p.counter.Count(ctx, p.query)
	if err != nil {
		return schema.Display{}, fmt.Errorf("count %s: %w", p.variant.Name, err)
	}
	return p.renderer.Count(p.variant, total)
}
