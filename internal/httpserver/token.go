// internal/httpserver/token.go
//
// Game tokens: HS256 JWTs binding a client to the round it started.
// A guess is only accepted when the presented token names the same game ID,
// so round IDs alone are not enough to play someone else's round.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("invalid token")

// signToken creates a token for gameID that expires after the configured TTL.
func (s *Server) signToken(gameID string) (string, time.Time, error) {
	now := s.cfg.now()
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// tokenGameID verifies tok and returns the game ID it was issued for.
func (s *Server) tokenGameID(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.cfg.now))
	if err != nil || !t.Valid {
		return "", errBadToken
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errBadToken
	}
	return gid, nil
}

// setTokenCookie stores the game token for browser clients.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the token cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
