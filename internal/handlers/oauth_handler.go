package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"brainsmath/internal/config"
	"brainsmath/internal/service"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler serves Google sign-in
type OAuthHandler struct {
	auth   *service.AuthService
	google *oauth2.Config
}

// NewOAuthHandler creates an OAuth handler. Returns nil when Google sign-in
// is not configured.
func NewOAuthHandler(cfg *config.Config, auth *service.AuthService) *OAuthHandler {
	if cfg.GoogleClientID == "" {
		return nil
	}

	redirectBase := cfg.OAuthRedirectBaseURL
	if redirectBase == "" {
		redirectBase = cfg.AppBaseURL
	}

	return &OAuthHandler{
		auth: auth,
		google: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  redirectBase + "/api/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Start handles GET /api/auth/google/start, redirecting to Google's consent
// screen with a state nonce bound to a cookie
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /api/auth/google/callback, exchanging the code and
// returning a token pair
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respondError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.google.Exchange(ctx, code)
	if err != nil {
		log.Printf("oauth code exchange failed: %v", err)
		respondError(w, http.StatusBadGateway, "authorization exchange failed")
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		log.Printf("oauth userinfo fetch failed: %v", err)
		respondError(w, http.StatusBadGateway, "could not fetch account info")
		return
	}
	if !info.VerifiedEmail {
		respondError(w, http.StatusForbidden, "email address is not verified")
		return
	}

	pair, err := h.auth.OAuthLogin("google", info.Sub, info.Email, suggestUsername(info))
	if err != nil {
		log.Printf("oauth login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
}

func (h *OAuthHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.google.Client(ctx, token)
	resp, err := client.Get("https://openidconnect.googleapis.com/v1/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, err
	}
	return info, nil
}

func suggestUsername(info *googleUserInfo) string {
	if info.GivenName != "" {
		return strings.ToLower(strings.ReplaceAll(info.GivenName, " ", "_"))
	}
	if at := strings.Index(info.Email, "@"); at > 0 {
		return info.Email[:at]
	}
	return "player"
}
