package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

// CredentialSource is the read-only view of the session the request side
// needs.
type CredentialSource interface {
	Token() string
}

// Logouter ends the session.
type Logouter interface {
	Logout(ctx context.Context) error
}

// Navigator moves the client to another route.
type Navigator interface {
	Push(ctx context.Context, path string) error
}

// BearerToken sets "Authorization: Bearer <token>" whenever source has a
// token. Without one the request is sent as is.
func BearerToken(source CredentialSource) RequestInterceptor {
	return RequestInterceptorFunc(func(req *http.Request) error {
		if token := source.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	})
}

// Unauthorized logs out and navigates to loginPath when a call fails with
// status 401. The original error is still returned so the call site sees
// the failure; logout or navigation errors are joined to it.
func Unauthorized(session Logouter, nav Navigator, loginPath string, logger logging.Logger) ResponseInterceptor {
	return ResponseInterceptorFunc(func(resp *http.Response, err error) (*http.Response, error) {
		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
			return resp, err
		}

		ctx := context.WithoutCancel(se.Context())
		logger.Warn(ctx, "session rejected by server, logging out", "url", se.URL)

		errs := []error{err}
		if lerr := session.Logout(ctx); lerr != nil {
			errs = append(errs, lerr)
		}
		if nerr := nav.Push(ctx, loginPath); nerr != nil {
			errs = append(errs, nerr)
		}
		if len(errs) == 1 {
			return resp, err
		}
		return resp, errors.Join(errs...)
	})
}
