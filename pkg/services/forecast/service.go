package forecast

import (
	"context"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const DefaultPeriods = 6

// SalesReader is the storage side of the pipeline.
type SalesReader interface {
	ListSalesRecords(ctx context.Context) ([]store.SalesRecord, error)
}

// Recorder receives pipeline metrics. A nil Recorder is allowed.
type Recorder interface {
	RecordForecast(outcome string, duration time.Duration)
	RecordHistoryMonths(months int)
}

type Service interface {
	GetHistory(ctx context.Context) ([]domain.MonthlyObservation, error)
	Forecast(ctx context.Context, req domain.ForecastRequest) (domain.ForecastResult, error)
}

type service struct {
	reader   SalesReader
	recorder Recorder
}

func NewService(reader SalesReader, recorder Recorder) Service {
	return &service{
		reader:   reader,
		recorder: recorder,
	}
}

func (s *service) GetHistory(ctx context.Context) ([]domain.MonthlyObservation, error) {
	records, err := s.reader.ListSalesRecords(ctx)
	if err != nil {
		return nil, &InternalError{Op: "load sales records", Err: err}
	}

	series := AggregateMonthly(records)
	zerolog.Ctx(ctx).Debug().
		Int("records", len(records)).
		Int("months", len(series)).
		Msg("aggregated monthly sales")

	if s.recorder != nil {
		s.recorder.RecordHistoryMonths(len(series))
	}
	return series, nil
}

func (s *service) Forecast(ctx context.Context, req domain.ForecastRequest) (result domain.ForecastResult, err error) {
	start := time.Now()
	defer func() {
		if s.recorder != nil {
			s.recorder.RecordForecast(Outcome(err), time.Since(start))
		}
	}()

	if req.Periods < 1 {
		return domain.ForecastResult{}, validationErrorf("periods", "", "must be at least 1, got %d", req.Periods)
	}
	if err := validateBound("date_from", req.DateFrom); err != nil {
		return domain.ForecastResult{}, err
	}
	if err := validateBound("date_to", req.DateTo); err != nil {
		return domain.ForecastResult{}, err
	}

	series, err := s.GetHistory(ctx)
	if err != nil {
		return domain.ForecastResult{}, err
	}
	if len(series) == 0 {
		return domain.ForecastResult{}, errNoHistory
	}

	indexed, err := IndexSeries(series, req.DateFrom, req.DateTo)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	model, err := FitTrend(indexed)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int("months", len(indexed)).
		Int("periods", req.Periods).
		Float64("intercept", model.Intercept).
		Float64("slope", model.Slope).
		Msg("fitted sales trend")

	forecast := Extrapolate(model, indexed, req.Periods)
	for _, p := range forecast {
		if !isFinite(p.Sales) {
			return domain.ForecastResult{}, &InternalError{Op: "extrapolate trend", Err: errNonFinite}
		}
	}

	return Assemble(indexed, forecast, req.Periods), nil
}
