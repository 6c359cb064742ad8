// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kanoon/kanoon/internal/platform/respond"
)

const probeTimeout = 2 * time.Second

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// HealthDependencies names the checks run by the readiness probe.
type HealthDependencies struct {
	Checks map[string]Check
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the liveness and readiness handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx, cancel := context.WithTimeout(request.Context(), probeTimeout)
		defer cancel()

		results := make([]checkResult, 0, len(deps.Checks))
		ready := true
		for name, check := range deps.Checks {
			result := checkResult{Name: name, OK: true}
			if err := check(ctx); err != nil {
				result.OK, result.Error, ready = false, err.Error(), false
				logger.ErrorContext(ctx, "readiness_check_failed",
					slog.String("dependency", name),
					slog.Any("error", err),
				)
			}
			results = append(results, result)
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		respond.JSON(writer, code, respond.SuccessEnvelope{
			Data: map[string]any{"status": status, "checks": results},
		})
	}
	return liveness, readiness
}
