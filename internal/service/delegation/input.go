package delegation

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// IssueInput carries one token issuance request.
type IssueInput struct {
	ClientID         uuid.UUID
	ClientSecret     string
	ExternalIdentity string
	Scopes           []domain.ScopeName
	// TTL is the requested token lifetime; the effective lifetime is capped
	// at the configured maximum. Zero means the maximum.
	TTL        time.Duration
	CallerAddr string
}

// missingFields returns the names of required fields that are absent.
func (in IssueInput) missingFields() []string {
	var missing []string
	if in.ClientID == uuid.Nil {
		missing = append(missing, "client_id")
	}
	if in.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if in.ExternalIdentity == "" {
		missing = append(missing, "external_identity")
	}
	if len(in.Scopes) == 0 {
		missing = append(missing, "scopes")
	}
	return missing
}

// IssueResult is a successfully minted delegated token.
type IssueResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	Scope       string
	JTI         uuid.UUID
	ExpiresAt   time.Time
}
