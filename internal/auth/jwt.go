package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// TokenManager mints and verifies delegation bearer tokens. Tokens are
// HS256-signed claim sets and are never persisted; validity is re-derived
// from the signature and expiry at every use.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	maxTTL   time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer, audience string, maxTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		maxTTL:   maxTTL,
	}
}

// delegationClaims extends registered claims with the authorized party (the
// bot client) and the space-delimited granted scope set.
type delegationClaims struct {
	jwt.RegisteredClaims
	AuthorizedParty string `json:"azp"`
	Scope           string `json:"scope"`
}

// Mint creates a signed delegation token for the delegator/delegate pair.
// The effective lifetime is min(ttl, maxTTL); ttl <= 0 means maxTTL.
// Returns the compact token, its jti and its expiry.
func (m *TokenManager) Mint(delegatorID, delegateID uuid.UUID, scopes []domain.ScopeName, ttl time.Duration) (string, uuid.UUID, time.Time, error) {
	if ttl <= 0 || ttl > m.maxTTL {
		ttl = m.maxTTL
	}

	now := time.Now()
	jti := uuid.New()
	expiresAt := now.Add(ttl)

	claims := delegationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   delegatorID.String(),
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti.String(),
		},
		AuthorizedParty: delegateID.String(),
		Scope:           joinScopes(scopes),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", uuid.Nil, time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, jti, expiresAt, nil
}

// Verify parses the compact token and checks signature, expiry, issuer and
// audience. It performs no liveness checks; callers re-check delegator and
// delegate state against the store.
func (m *TokenManager) Verify(tokenString string) (domain.Grant, error) {
	if tokenString == "" {
		return domain.Grant{}, fmt.Errorf("%w: empty token", domain.ErrTokenInvalid)
	}

	token, err := jwt.ParseWithClaims(tokenString, &delegationClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithAudience(m.audience), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Grant{}, fmt.Errorf("parse token: %w: %w", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*delegationClaims)
	if !ok || !token.Valid {
		return domain.Grant{}, fmt.Errorf("%w: invalid claims", domain.ErrTokenInvalid)
	}

	delegatorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("%w: invalid subject: %w", domain.ErrTokenInvalid, err)
	}

	delegateID, err := uuid.Parse(claims.AuthorizedParty)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("%w: invalid azp: %w", domain.ErrTokenInvalid, err)
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("%w: invalid jti: %w", domain.ErrTokenInvalid, err)
	}

	return domain.Grant{
		DelegatorID: delegatorID,
		DelegateID:  delegateID,
		Scopes:      SplitScopes(claims.Scope),
		JTI:         jti,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// joinScopes renders a scope set as the space-delimited wire form.
func joinScopes(scopes []domain.ScopeName) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// SplitScopes parses the space-delimited wire form of a scope set.
func SplitScopes(raw string) []domain.ScopeName {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	scopes := make([]domain.ScopeName, len(fields))
	for i, f := range fields {
		scopes[i] = domain.ScopeName(f)
	}
	return scopes
}
