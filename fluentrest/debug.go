package fluentrest

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// debugLogger is the default logger for debug output. Replace it per
// Template with WithLogger.
var debugLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func logRequest(logger zerolog.Logger, req *http.Request) {
	event := logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String())
	for name, values := range req.Header {
		event = event.Strs("header."+name, values)
	}
	event.Msg("request")
}

func logResponse(logger zerolog.Logger, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Int("status", resp.StatusCode).
		Str("url", resp.Request.URL.String()).
		Dur("duration", duration).
		Int64("content_length", resp.ContentLength).
		Msg("response")
}
