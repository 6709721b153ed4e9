package middlewares

import (
	"net/http"
	"time"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// RateLimiter limits each client IP to App.MaxRequests per second and answers
// with the regular error envelope once the limit is hit.
func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	maxRequests := m.InternalConfig.App.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 20
	}
	return httprate.Limit(
		maxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			err := exceptions.BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
			utils.BuildErrorResponse(m.Log, w, err)
		}),
	)
}
