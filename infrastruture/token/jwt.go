package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionClaim is the claim that binds a token to one visualization session.
const SessionClaim = "sessionID"

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrWrongIssuer   = errors.New("token: unexpected issuer")
	ErrMissingClaim  = errors.New("token: missing session claim")
	ErrSigningMethod = errors.New("token: unexpected signing method")
)

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT for the given claims.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{
		"exp": now.Add(expTime).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrWrongIssuer
	}
	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrSigningMethod
	}
	return []byte(s.secretKey), nil
}

// IssueSessionToken signs a token that grants access to session id only.
func IssueSessionToken(ts i.Tokenizer, id uuid.UUID, ttl time.Duration) (string, error) {
	return ts.Generate(map[string]interface{}{SessionClaim: id.String()}, ttl)
}

// SessionID extracts the session a set of decoded claims is bound to.
func SessionID(claims map[string]interface{}) (uuid.UUID, error) {
	raw, ok := claims[SessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrMissingClaim
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrMissingClaim, err)
	}
	return id, nil
}
