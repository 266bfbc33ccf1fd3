package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"speedrun_vote_system/configs"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	sessionCookie = "vote_session"
	stateCookie   = "oauth_state"

	discordAuthURL  = "https://discord.com/api/oauth2/authorize"
	discordTokenURL = "https://discord.com/api/oauth2/token"
	discordMeURL    = "https://discord.com/api/users/@me"
)

// discordProfile is the identity Discord returns for the logged-in user.
type discordProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
}

type authenticator struct {
	oauth  *oauth2.Config
	secret []byte
	ttl    time.Duration
}

func newAuthenticator(config configs.Web, discordConfig configs.Discord) *authenticator {
	return &authenticator{
		oauth: &oauth2.Config{
			ClientID:     discordConfig.ClientID,
			ClientSecret: discordConfig.ClientSecret,
			RedirectURL:  config.BaseURL + "/callback",
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthURL,
				TokenURL: discordTokenURL,
			},
		},
		secret: []byte(config.JWTSecret),
		ttl:    config.SessionTTL,
	}
}

func (a *authenticator) authCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

func (a *authenticator) fetchProfile(ctx context.Context, code string) (*discordProfile, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	response, err := a.oauth.Client(ctx, token).Get(discordMeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discord profile: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord returned %s for profile fetch", response.Status)
	}

	profile := &discordProfile{}
	if err := json.NewDecoder(response.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("failed to decode discord profile: %w", err)
	}
	return profile, nil
}

func (a *authenticator) issueToken(discordID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": discordID,
		"exp": time.Now().Add(a.ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

func (a *authenticator) validateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
