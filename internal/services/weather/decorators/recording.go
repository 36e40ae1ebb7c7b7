package decorators

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
)

type historyRecorder interface {
	Record(ctx context.Context, query string, loc models.Location) error
}

type outcomeObserver interface {
	ObserveLookup(outcome string)
}

// RecordingService counts every user lookup by outcome and stores the
// successful ones, whichever layer below answered them.
type RecordingService struct {
	inner    lookupService
	history  historyRecorder
	observer outcomeObserver
	logger   zerolog.Logger
}

// NewRecordingService wraps inner. history and observer may be nil.
func NewRecordingService(
	inner lookupService,
	history historyRecorder,
	observer outcomeObserver,
	logger zerolog.Logger,
) *RecordingService {
	logger = logger.With().Str("component", "RecordingService").Logger()
	return &RecordingService{inner: inner, history: history, observer: observer, logger: logger}
}

func (s *RecordingService) Lookup(ctx context.Context, city string) (models.Report, error) {
	report, err := s.inner.Lookup(ctx, city)

	if s.observer != nil {
		s.observer.ObserveLookup(weather.Outcome(err))
	}
	if err != nil || s.history == nil {
		return report, err
	}

	if herr := s.history.Record(ctx, city, report.Location); herr != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Err(herr).
			Msg("failed to record lookup history")
	}
	return report, nil
}
