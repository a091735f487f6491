package api

import (
	"context"
	"net/http"
	"strings"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
)

type ctxKey int

const principalKey ctxKey = iota

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	User *models.User
	Role models.Role
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func principalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// authenticate validates the Bearer access token and resolves the caller
// to an active user before the handler runs.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, apperrors.Authentication("missing bearer token"))
			return
		}

		claims, err := s.tokens.ParseAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.writeError(w, apperrors.Authentication("invalid access token"))
			return
		}

		user, err := s.svc.User().GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			s.writeError(w, apperrors.Authentication("unknown subject"))
			return
		}
		if !user.Active {
			s.writeError(w, apperrors.Authentication("account disabled"))
			return
		}

		p := &Principal{User: user, Role: user.Role}
		next(w, r.WithContext(withPrincipal(r.Context(), p)))
	}
}

// requireRoles gates a handler on the caller's role.
func (s *Server) requireRoles(roles []models.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok {
			s.writeError(w, apperrors.Authentication("not authenticated"))
			return
		}
		for _, role := range roles {
			if p.Role == role {
				next(w, r)
				return
			}
		}
		s.log.Warning("role denied",
			logger.String("email", p.User.Email),
			logger.String("role", string(p.Role)),
			logger.String("path", r.URL.Path))
		s.writeError(w, apperrors.PermissionDenied("insufficient role"))
	}
}
