package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/sozercan/listing-lens/apimodels"
	"github.com/sozercan/listing-lens/internal/metrics"
)

// Backend performs one call to the analysis API.
type Backend interface {
	Analyze(ctx context.Context, query string) (*apimodels.AnalyzeResponse, error)
}

// Analyzer turns queries into terminal request states.
type Analyzer struct {
	backend Backend
	metrics *metrics.Metrics
}

func New(backend Backend, m *metrics.Metrics) *Analyzer {
	return &Analyzer{
		backend: backend,
		metrics: m,
	}
}

// Dispatch validates query and, if it is usable, calls the backend exactly
// once. The returned state is always Succeeded or Failed.
func (a *Analyzer) Dispatch(ctx context.Context, query string) RequestState {
	trimmed, err := ValidateQuery(query)
	if err != nil {
		a.metrics.ObserveDispatch(metrics.OutcomeValidation, 0)
		return Failure(query, err)
	}

	slog.Info("Starting analysis", "query", trimmed)
	start := time.Now()

	result, err := a.backend.Analyze(ctx, trimmed)
	elapsed := time.Since(start)
	if err != nil {
		failed := Failure(trimmed, err)
		slog.Error("Analysis request failed", "query", trimmed, "kind", failed.Kind, "duration", elapsed, "error", err)
		a.metrics.ObserveDispatch(failed.Kind.String(), elapsed)
		return failed
	}

	slog.Info("Analysis request completed successfully", "query", trimmed, "duration", elapsed, "has_analysis", result.Analysis != nil)
	a.metrics.ObserveDispatch(metrics.OutcomeSucceeded, elapsed)
	return Succeeded{Query: trimmed, Result: result}
}
