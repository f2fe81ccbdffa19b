package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// SessionClaims is the JWT payload for an authenticated session. The
// verified email is the linking-identity key the rest of the system
// trusts.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles the Google OAuth code exchange and issues the
// HS256 session tokens the API consumes.
type AuthService struct {
	oauth         *oauth2.Config
	secretKey     []byte
	tokenLifespan time.Duration
	Log           logger.Logger
}

func NewAuthService(clientID, clientSecret, redirectURL, jwtSecret string, tokenLifespan time.Duration, log logger.Logger) *AuthService {
	return &AuthService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		secretKey:     []byte(jwtSecret),
		tokenLifespan: tokenLifespan,
		Log:           log,
	}
}

// LoginURL returns the Google consent page URL for the given state.
func (as *AuthService) LoginURL(state string) string {
	return as.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades an authorization code for the verified email of the
// signed-in Google account.
func (as *AuthService) Exchange(ctx context.Context, code string) (string, error) {
	token, err := as.oauth.Exchange(ctx, code)
	if err != nil {
		return "", apperror.NewUnauthenticated("authorization code exchange failed")
	}

	resp, err := as.oauth.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return "", apperror.NewInternal("failed to fetch user info", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", apperror.NewInternal(fmt.Sprintf("user info request returned %d", resp.StatusCode), nil)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", apperror.NewInternal("failed to decode user info", err)
	}
	if info.Email == "" || !info.VerifiedEmail {
		return "", apperror.NewUnauthenticated("account email is not verified")
	}
	return info.Email, nil
}

// GenerateToken issues a session token for a verified email.
func (as *AuthService) GenerateToken(email string) (string, error) {
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.tokenLifespan)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   email,
			Issuer:    "cozyconnect-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString(as.secretKey)
	if err != nil {
		return "", apperror.NewInternal("cannot sign token", err)
	}
	return signedString, nil
}

// ValidateToken parses and verifies a session token.
func (as *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return as.secretKey, nil
	})
	if err != nil {
		return nil, apperror.NewUnauthenticated("invalid or expired token")
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperror.NewUnauthenticated("invalid token claims")
}
