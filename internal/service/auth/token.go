package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
)

// Claims carries the verified identity inside a bearer token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a token
type Identity struct {
	AccountID uuid.UUID
	Role      account.Role
}

// TokenIssuer mints and verifies HS256 bearer tokens
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenIssuer creates a token issuer
func NewTokenIssuer(secret string, expiry time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Issue signs a token for the account
func (t *TokenIssuer) Issue(acc *account.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(acc.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning the caller identity
func (t *TokenIssuer) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	role := account.Role(claims.Role)
	if !role.IsValid() {
		return nil, errors.New("invalid token role")
	}

	return &Identity{AccountID: accountID, Role: role}, nil
}
