package httpapi

import (
	"net/http"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/platform/tracing"
)

// Only handler spans are recorded; middleware and response helpers stay flat.
var spans = tracing.NewScope("football-hub/internal/interfaces/httpapi", tracing.OnlyPrefix("httpapi.Handler."))

type RouterConfig struct {
	Logger         *logging.Logger
	SwaggerEnabled bool
	CORSOrigins    []string
	// InternalJobToken guards /internal/jobs. An empty token rejects every call.
	InternalJobToken string
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerReadRoutes(mux, handler)
	registerChatRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	var h http.Handler = capturePattern(mux)
	h = recoverPanic(logger, h)
	h = CORS(cfg.CORSOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var catcher panics.Catcher
		catcher.Try(func() { next.ServeHTTP(w, r) })

		recovered := catcher.Recovered()
		if recovered == nil {
			return
		}
		if recovered.Value == http.ErrAbortHandler {
			panic(recovered.Value)
		}
		logger.ErrorContext(r.Context(), "panic recovered",
			"panic", recovered.Value,
			"path", r.URL.Path,
			"stack", string(recovered.Stack),
		)
		writeInternalError(r.Context(), w)
	})
}
