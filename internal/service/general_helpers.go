package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/events"
)

// publish sends an event and logs delivery failures. Events never fail the
// operation that raised them.
func publish(ctx context.Context, p events.Publisher, logger *slog.Logger, ev events.Event) {
	if err := p.Publish(ctx, ev); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			"type", ev.Type,
			"subject", ev.SubjectID,
			"error", err)
	}
}

// parseDate parses a "2006-01-02" date.
func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// parseOptionalDate parses a date that may be blank. Blank yields nil.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
