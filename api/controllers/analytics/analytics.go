package analytics

import (
	"net/http"

	"github.com/angelmondragon/pulse-analytics/api/responses"
	"github.com/angelmondragon/pulse-analytics/api/validators"
	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/internal/dashboard"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
)

// DashboardResponse pairs the payload with its rendered view model.
type DashboardResponse struct {
	Payload *analytics.Payload `json:"payload"`
	View    dashboard.View     `json:"view"`
}

type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// Analytics returns the bare payload on success.
func Analytics(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, err := validators.ParseAnalyticsParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		payload, err := service.Query(ctx, params.Request())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, payload)
	}
}

func Dashboard(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, err := validators.ParseAnalyticsParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		payload, err := service.Query(ctx, params.Request())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, DashboardResponse{Payload: payload, View: dashboard.Build(*payload)})
	}
}

// Prompt exposes the composed instruction without calling a model.
func Prompt(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, err := validators.ParseAnalyticsParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		prompt, err := service.Prompt(params.Request().Query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, PromptResponse{Prompt: prompt})
	}
}
