package sales

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/services/catalog"
	"github.com/de-tools/revenue-atlas/pkg/services/forecast"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Handler struct {
	forecaster forecast.Service
	explorer   catalog.Explorer
	validate   *validator.Validate
}

func NewHandler(forecaster forecast.Service, explorer catalog.Explorer) *Handler {
	return &Handler{
		forecaster: forecaster,
		explorer:   explorer,
		validate:   newValidator(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tables, err := h.explorer.ListTables(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list tables")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapTablesDomainToApi(tables))
}

func (h *Handler) ExecuteSQL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SQLRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.explorer.ExecuteQuery(ctx, req.SQL)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("query failed")
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapRowsDomainToApi(rows))
}

func (h *Handler) SalesHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	series, err := h.forecaster.GetHistory(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load sales history")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapMonthlyObservationsDomainToApi(series))
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ForecastRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.forecaster.Forecast(ctx, adapters.MapForecastRequestApiToDomain(req))
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg("forecast failed")
		} else {
			logger.Info().Err(err).Msg("forecast rejected")
		}
		writeError(w, r, status, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapForecastResultDomainToApi(result))
}

// decode reads an optional JSON body into dst, applies default tags and validates it.
func (h *Handler) decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := defaults.Set(dst); err != nil {
		return err
	}
	if err := h.validate.StructCtx(r.Context(), dst); err != nil {
		return validationMessage(err)
	}
	return nil
}

func statusFor(err error) int {
	var validationErr *forecast.ValidationError
	var unavailableErr *forecast.DataUnavailableError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &unavailableErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: field required", fe.Field())
	case "gte":
		return fmt.Errorf("%s: must be at least %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Errorf("%s: must be in YYYY-MM format", fe.Field())
	default:
		return fmt.Errorf("%s: invalid value", fe.Field())
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(api.ErrorResponse{Detail: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, api.ErrorResponse{Detail: detail})
}
