package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ghuser/equiptrack/pkg/httpx"
	"github.com/ghuser/equiptrack/pkg/logger"
	identitydomain "github.com/ghuser/equiptrack/services/identity/domain"
	"github.com/ghuser/equiptrack/services/identity/domain/models"
)

// TokenResolver resolves a bearer access token into the acting user and that
// user's primary organisation. Implemented by the identity application service.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, *models.Organisation, error)
}

// RequireUser is a chi middleware that enforces bearer-token authentication.
// It reads the Authorization header, resolves the token to a user and primary
// organisation, and injects both into the request context.
//
// An unresolvable user or organisation yields 404 with a descriptive message;
// this mirrors the upstream API contract, which reports missing identity as
// not-found rather than 401.
//
// After this middleware, handlers can safely call auth.UserFromCtx and
// auth.OrgFromCtx on the request context.
func RequireUser(resolver TokenResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				log.WarnContext(r.Context(), "missing or malformed authorization header")
				httpx.JSONError(w, http.StatusNotFound, "user not found")
				return
			}

			user, org, err := resolver.ResolveToken(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, identitydomain.ErrUserNotFound):
				log.WarnContext(r.Context(), "user not found for access token")
				httpx.JSONError(w, http.StatusNotFound, "user not found")
				return
			case errors.Is(err, identitydomain.ErrOrganisationNotFound):
				log.WarnContext(r.Context(), "no primary organisation for user")
				httpx.JSONError(w, http.StatusNotFound, "organisation for user not found")
				return
			default:
				log.ErrorContext(r.Context(), "token resolution failed", "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := WithIdentity(r.Context(), user, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
