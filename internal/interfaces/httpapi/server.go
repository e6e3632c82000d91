package httpapi

import (
	"net/http"

	"github.com/riskibarqy/oddsboard/internal/platform/id"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

// RouterOptions configures NewRouter. A nil Metrics disables GET /metrics
// and request metrics.
type RouterOptions struct {
	CORSAllowedOrigins []string
	Metrics            *metrics.Metrics
	RequestIDs         id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerMarketRoutes(mux, handler)

	// RequestMetrics must see the same *http.Request the mux fills Pattern on.
	var next http.Handler = RequestMetrics(opts.Metrics, mux)
	next = recoverPanic(logger, next)
	next = CORS(opts.CORSAllowedOrigins, next)
	next = RequestLogging(logger, next)
	next = RequestID(opts.RequestIDs, next)
	return RequestTracing(next)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
