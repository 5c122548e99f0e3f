package httpx

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

// LogResponses writes one debug record per completed call.
func LogResponses(logger logging.Logger) ResponseInterceptor {
	return ResponseInterceptorFunc(func(resp *http.Response, err error) (*http.Response, error) {
		var se *StatusError
		switch {
		case err == nil && resp != nil && resp.Request != nil:
			logger.Debug(resp.Request.Context(), "http call",
				"method", resp.Request.Method, "url", resp.Request.URL.Redacted(), "status", resp.StatusCode)
		case errors.As(err, &se):
			logger.Debug(se.Context(), "http call failed",
				"method", se.Method, "url", se.URL, "status", se.StatusCode)
		}
		return resp, err
	})
}
