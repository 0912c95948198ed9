package forecast

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSalesReader struct {
	mock.Mock
}

func (m *mockSalesReader) ListSalesRecords(ctx context.Context) ([]store.SalesRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.SalesRecord), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordForecast(outcome string, duration time.Duration) {
	m.Called(outcome, duration)
}

func (m *mockRecorder) RecordHistoryMonths(months int) {
	m.Called(months)
}

func fourMonths() []store.SalesRecord {
	return []store.SalesRecord{
		line("2023-01-10", 50, 2),
		line("2023-02-10", 100, 2),
		line("2023-03-10", 150, 2),
		line("2023-04-10", 200, 2),
	}
}

func TestService_GetHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return(fourMonths(), nil)

		history, err := NewService(reader, nil).GetHistory(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.MonthlyObservation{
			{YearMonth: "2023-01", Sales: 100},
			{YearMonth: "2023-02", Sales: 200},
			{YearMonth: "2023-03", Sales: 300},
			{YearMonth: "2023-04", Sales: 400},
		}, history)
		reader.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return([]store.SalesRecord{}, nil)

		history, err := NewService(reader, nil).GetHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		reader := new(mockSalesReader)
		cause := errors.New("database is locked")
		reader.On("ListSalesRecords", ctx).Return(nil, cause)

		_, err := NewService(reader, nil).GetHistory(ctx)

		var internal *InternalError
		require.ErrorAs(t, err, &internal)
		assert.ErrorIs(t, err, cause)
	})
}

func TestService_Forecast(t *testing.T) {
	ctx := context.Background()

	t.Run("history and forecast are concatenated", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return(fourMonths(), nil)

		result, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 6})
		require.NoError(t, err)

		assert.Len(t, result.History, 4)
		assert.Len(t, result.Forecast, 6)
		assert.Equal(t, append(append([]domain.Point{}, result.History...), result.Forecast...), result.All)
		assert.Equal(t, domain.LinearRegressionModel, result.Model)
		assert.Equal(t, 6, result.Periods)

		for _, p := range result.History {
			assert.Equal(t, domain.PointKindHistory, p.Kind)
		}
		assert.Equal(t, "2023-05", result.Forecast[0].YearMonth)
		assert.InDelta(t, 500.0, result.Forecast[0].Sales, 1e-9)
		assert.Equal(t, "2023-10", result.Forecast[5].YearMonth)
		assert.InDelta(t, 1000.0, result.Forecast[5].Sales, 1e-9)
	})

	t.Run("range filter re-indexes", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return([]store.SalesRecord{
			line("2023-01-10", 1000, 1),
			line("2023-02-10", 100, 1),
			line("2023-03-10", 200, 1),
			line("2023-04-10", 300, 1),
		}, nil)

		result, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 1, DateFrom: "2023-02"})
		require.NoError(t, err)

		require.Len(t, result.History, 3)
		assert.Equal(t, "2023-02", result.History[0].YearMonth)
		require.Len(t, result.Forecast, 1)
		assert.Equal(t, "2023-05", result.Forecast[0].YearMonth)
		assert.InDelta(t, 400.0, result.Forecast[0].Sales, 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		records := []store.SalesRecord{
			line("1996-07-04", 14.4, 12),
			line("1996-08-01", 9.8, 10),
			line("1996-09-02", 34.8, 5),
			line("1996-10-03", 18.6, 9),
			line("1996-11-04", 42.4, 40),
		}
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return(records, nil)
		svc := NewService(reader, nil)

		first, err := svc.Forecast(ctx, domain.ForecastRequest{Periods: 4})
		require.NoError(t, err)
		second, err := svc.Forecast(ctx, domain.ForecastRequest{Periods: 4})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty input is data unavailable", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return([]store.SalesRecord{}, nil)
		svc := NewService(reader, nil)

		history, err := svc.GetHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)

		_, err = svc.Forecast(ctx, domain.ForecastRequest{Periods: 6})
		var unavailable *DataUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "No sales history available. Load Northwind first.", err.Error())
	})

	t.Run("filtered to nothing is data unavailable", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return(fourMonths(), nil)

		_, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 6, DateTo: "2022-12"})
		var unavailable *DataUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("malformed bound fails before reading", func(t *testing.T) {
		reader := new(mockSalesReader)

		_, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 6, DateFrom: "not-a-month"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "date_from", validationErr.Field)
		reader.AssertNotCalled(t, "ListSalesRecords", mock.Anything)
	})

	t.Run("non-positive periods are rejected", func(t *testing.T) {
		for _, periods := range []int{0, -3} {
			reader := new(mockSalesReader)

			_, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: periods})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "periods", validationErr.Field)
			reader.AssertNotCalled(t, "ListSalesRecords", mock.Anything)
		}
	})

	t.Run("malformed stored month", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return([]store.SalesRecord{
			line("2023-01-10", 1, 1),
			line("bad", 1, 1),
		}, nil)

		_, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 1})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("overflowing projection is internal", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return([]store.SalesRecord{
			line("2023-01-10", 0, 1),
			line("2023-02-10", math.MaxFloat64, 1),
		}, nil)

		_, err := NewService(reader, nil).Forecast(ctx, domain.ForecastRequest{Periods: 2})
		var internal *InternalError
		assert.ErrorAs(t, err, &internal)
	})

	t.Run("records metrics", func(t *testing.T) {
		reader := new(mockSalesReader)
		reader.On("ListSalesRecords", ctx).Return(fourMonths(), nil)
		recorder := new(mockRecorder)
		recorder.On("RecordHistoryMonths", 4).Once()
		recorder.On("RecordForecast", "ok", mock.AnythingOfType("time.Duration")).Once()

		_, err := NewService(reader, recorder).Forecast(ctx, domain.ForecastRequest{Periods: 2})
		require.NoError(t, err)
		recorder.AssertExpectations(t)
	})

	t.Run("records failed outcome", func(t *testing.T) {
		recorder := new(mockRecorder)
		recorder.On("RecordForecast", "validation_error", mock.AnythingOfType("time.Duration")).Once()

		_, err := NewService(new(mockSalesReader), recorder).Forecast(ctx, domain.ForecastRequest{Periods: 0})
		require.Error(t, err)
		recorder.AssertExpectations(t)
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "validation_error", Outcome(&ValidationError{Msg: "x"}))
	assert.Equal(t, "data_unavailable", Outcome(errNoHistory))
	assert.Equal(t, "internal_error", Outcome(&InternalError{Op: "x", Err: errors.New("y")}))
}
