package http

import (
	"net/http"
	"strings"

	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/jsonweb"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// SessionMiddleware parses the bearer token on each request and places the
// resulting session principal on the request context. Requests without an
// Authorization header pass through without a session; the authorization gate
// rejects them when they reach a protected operation.
func SessionMiddleware(log *zap.Logger, parser *jsonweb.TokenParser) func(http.Handler) http.Handler {
	api := kithttp.NewAPI(kithttp.WithLog(log))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := parser.Parse(raw)
			if err != nil {
				api.Err(w, &errors.Error{
					Code: errors.EUnauthorized,
					Msg:  "invalid session token",
					Err:  err,
				})
				return
			}

			ctx := icontext.SetSession(r.Context(), token.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimPrefix(header, prefix), true
}
