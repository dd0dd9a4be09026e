package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/services"
)

const (
	sessionName              = "ahachul"
	sessionOAuthStateKeyName = "oauth_state"
	sessionExpirySeconds     = 60 * 10 // 10 minutes
)

// UseSameSiteNoneMode is a setting to set SameSite=none mode when issuing session cookies, so the cookies will
// be sent along with cross-site requests. This should only be used in development environments, not in production.
type UseSameSiteNoneMode bool

func (b UseSameSiteNoneMode) Bool() bool {
	return bool(b)
}

type SessionAuthenticationKey [32]byte
type SessionEncryptionKey [32]byte

type AuthenticationConfig struct {
	SessionAuthenticationKey SessionAuthenticationKey
	SessionEncryptionKey     SessionEncryptionKey
	UseSameSiteNoneMode      UseSameSiteNoneMode
	// InsecureCookies issues the session cookie without the Secure flag, for plain HTTP test servers.
	InsecureCookies bool
}

type AuthenticationAPI struct {
	authenticationService services.AuthenticationService
	sessionStore          sessions.Store
	config                AuthenticationConfig
	*APIBase
}

func NewAuthenticationAPI(
	authenticationService services.AuthenticationService,
	logFactory logger.LogFactory,
	config AuthenticationConfig,
) *AuthenticationAPI {

	sessionStore := sessions.NewCookieStore(
		config.SessionAuthenticationKey[:],
		config.SessionEncryptionKey[:])

	sessionStore.Options.Secure = !config.InsecureCookies
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.MaxAge = sessionExpirySeconds

	// Mobile web clients on other origins need SameSite=None to send the state cookie back on login.
	// https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Set-Cookie/SameSite
	if config.UseSameSiteNoneMode {
		sessionStore.Options.SameSite = http.SameSiteNoneMode
	} else {
		sessionStore.Options.SameSite = http.SameSiteLaxMode
	}

	return &AuthenticationAPI{
		authenticationService: authenticationService,
		sessionStore:          sessionStore,
		config:                config,
		APIBase:               NewAPIBase(logFactory("AuthenticationAPI")),
	}
}

// GetRedirectURL returns the login page of an OAuth provider. A random state is remembered in the session
// cookie and passed to the provider, so the login that follows can be checked against it.
func (a *AuthenticationAPI) GetRedirectURL(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	provider := models.ProviderType(strings.ToUpper(query.Get("providerType")))
	if !provider.Valid() {
		a.Error(w, r, gerror.NewErrInvalidQueryParameter("providerType must be KAKAO, GOOGLE or APPLE"))
		return
	}
	state := uuid.New().String()
	err := a.setSessionValue(w, r, sessionOAuthStateKeyName, state)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	redirectURL, err := a.authenticationService.RedirectURL(r.Context(), provider, state, query.Get("originHost"))
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, &documents.GetRedirectURLResponse{RedirectURL: redirectURL})
}

// Login signs a member in with the authorization code the OAuth provider redirected back with.
func (a *AuthenticationAPI) Login(w http.ResponseWriter, r *http.Request) {
	req := &documents.LoginRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	session := a.getSession(r)
	expectedState := a.getSessionValue(session, sessionOAuthStateKeyName)
	if expectedState != "" && req.State != expectedState {
		a.Error(w, r, gerror.NewErrValidationFailed("OAuth state does not match").EDetail("field", "state"))
		return
	}
	result, err := a.authenticationService.Login(r.Context(), req.ToDTO())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	if expectedState != "" {
		delete(session.Values, sessionOAuthStateKeyName)
		err = session.Save(r, w)
		if err != nil {
			a.Warnf("Error clearing OAuth state from session: %v", err)
		}
	}
	a.Infof("Member %s signed in using %s", result.MemberID, req.ProviderType)
	a.JSON(w, r, documents.MakeLoginResponse(result))
}

// Logout revokes the access token the request was authenticated with.
func (a *AuthenticationAPI) Logout(w http.ResponseWriter, r *http.Request) {
	meta := a.MustAuthenticationMeta(r)
	err := a.authenticationService.Logout(r.Context(), meta.AccessToken)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *AuthenticationAPI) RefreshToken(w http.ResponseWriter, r *http.Request) {
	req := &documents.RefreshTokenRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	pair, err := a.authenticationService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, documents.MakeTokenResponse(pair))
}

func (a *AuthenticationAPI) getSession(r *http.Request) *sessions.Session {
	session, err := a.sessionStore.Get(r, sessionName)
	if err != nil {
		session, _ = a.sessionStore.New(r, sessionName)
	}
	return session
}

func (a *AuthenticationAPI) setSessionValue(w http.ResponseWriter, r *http.Request, name string, value string) error {
	session := a.getSession(r)
	session.Values[name] = value
	err := session.Save(r, w)
	if err != nil {
		return errors.Wrap(err, "error saving session")
	}
	return nil
}

func (a *AuthenticationAPI) getSessionValue(session *sessions.Session, name string) string {
	v, ok := session.Values[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
