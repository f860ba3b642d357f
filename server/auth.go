package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const userIDHeader = "X-User-ID"

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidToken  = errors.New("invalid bearer token")
	errInvalidClaims = errors.New("token names no user")
	errForbidden     = errors.New("user lacks a download role")
)

// Claims are the JWT claims of an API token. The user id is the subject,
// or the user_id claim when the subject is empty.
type Claims struct {
	UserID ClaimID `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ClaimID is an id claim written as a JSON string or number.
type ClaimID string

// UnmarshalJSON accepts "7" and 7 alike.
func (id *ClaimID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ClaimID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id claim: %w", err)
	}
	*id = ClaimID(n.String())
	return nil
}

// Authenticator resolves the requesting user.
type Authenticator struct {
	secret          []byte
	trustUserHeader bool
}

// NewAuthenticator creates an authenticator for HS256 tokens signed with
// secret.
func NewAuthenticator(secret string, trustUserHeader bool, logger *slog.Logger) *Authenticator {
	if secret == "" && logger != nil {
		logger.Warn("api key secret not set, bearer tokens will be rejected")
	}
	return &Authenticator{secret: []byte(secret), trustUserHeader: trustUserHeader}
}

// UserID returns the id of the user making the request. A bearer token
// takes precedence over the trusted user header.
func (a *Authenticator) UserID(r *http.Request) (string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		if a.trustUserHeader {
			if id := strings.TrimSpace(r.Header.Get(userIDHeader)); id != "" {
				return id, nil
			}
		}
		return "", errMissingToken
	}

	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return a.validate(strings.TrimSpace(token))
}

func (a *Authenticator) validate(tokenStr string) (string, error) {
	if len(a.secret) == 0 {
		return "", fmt.Errorf("%w: no secret configured", errInvalidToken)
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !parsed.Valid {
		return "", errInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return "", errInvalidClaims
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	if claims.UserID != "" {
		return string(claims.UserID), nil
	}
	return "", errInvalidClaims
}
