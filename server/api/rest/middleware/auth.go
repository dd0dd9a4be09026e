package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/services"
)

type authenticationMetaContextKey struct{}

type AuthenticationMeta struct {
	MemberID    models.MemberID
	AccessToken string
}

// AdminMemberIDs lists the members allowed to use admin routes.
type AdminMemberIDs []models.MemberID

// WithAuthenticationMeta returns a copy of ctx carrying meta.
func WithAuthenticationMeta(ctx context.Context, meta *AuthenticationMeta) context.Context {
	return context.WithValue(ctx, authenticationMetaContextKey{}, meta)
}

// GetAuthenticationMeta returns the authenticated member of the request, or nil if the request was
// not authenticated.
func GetAuthenticationMeta(r *http.Request) *AuthenticationMeta {
	meta, _ := r.Context().Value(authenticationMetaContextKey{}).(*AuthenticationMeta)
	return meta
}

// MakeMustAuthenticate makes a middleware that enforces that the request must be authenticated.
// If the request is not authenticated then a 401 error will be returned to the client.
func MakeMustAuthenticate(log logger.Log) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if GetAuthenticationMeta(r) == nil {
				writeError(w, r, gerror.NewErrUnauthorized("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// MakeMustBeAdmin makes a middleware that only lets configured admin members through.
// Must run after MakeMustAuthenticate.
func MakeMustBeAdmin(log logger.Log, admins AdminMemberIDs) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			meta := GetAuthenticationMeta(r)
			for _, admin := range admins {
				if meta != nil && meta.MemberID == admin {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Warnf("Member %v attempted to use an admin route", meta)
			writeError(w, r, gerror.NewErrForbidden("Forbidden"))
		}
		return http.HandlerFunc(fn)
	}
}

// MakeJWTAuthenticator makes a middleware that authenticates requests using an access token supplied
// by the client as a Bearer token, requiring it to be valid, signed by the server and not logged out.
// If no token was provided in the request then this is a no-op.
func MakeJWTAuthenticator(log logger.Log, authenticationService services.AuthenticationService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "

			if len(authHeader) > len(bearerPrefix) && strings.HasPrefix(strings.ToLower(authHeader), strings.ToLower(bearerPrefix)) {
				token := strings.TrimSpace(authHeader[len(bearerPrefix):])
				member, err := authenticationService.AuthenticateAccessToken(r.Context(), token)
				if err != nil {
					log.Infof("Rejected access token: %v", err)
					writeError(w, r, err)
					return
				}
				meta := &AuthenticationMeta{
					MemberID:    member.ID,
					AccessToken: token,
				}
				r = r.WithContext(WithAuthenticationMeta(r.Context(), meta))
				log.Tracef("Authenticated member '%s' using JWT", member.ID)
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	doc := documents.NewErrorDocument(err)
	render.Status(r, doc.HTTPStatusCode)
	render.JSON(w, r, doc)
}
