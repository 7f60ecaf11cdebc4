package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// IssueToken runs the issuance pipeline in strict order. Every check that
// fails short-circuits, is audit-logged with its reason code, and leaves no
// partial state behind: the rate window unit taken at step 4 is returned on
// every exit except success, so only issued tokens consume budget.
func (s *Service) IssueToken(ctx context.Context, in IssueInput) (IssueResult, error) {
	now := time.Now()

	// Step 1: request shape.
	if missing := in.missingFields(); len(missing) > 0 {
		return IssueResult{}, s.deny(ctx, in, nil, nil, domain.ErrValidation, domain.DenialMalformedRequest, missing...)
	}

	// Step 2: kill switch, via the bounded-staleness cache.
	state, err := s.killsw.Current(ctx)
	if err != nil {
		return IssueResult{}, fmt.Errorf("delegation.IssueToken killswitch: %w", err)
	}
	if state.MaintenanceMode {
		var details []string
		if state.MaintenanceMessage != nil {
			details = append(details, *state.MaintenanceMessage)
		}
		return IssueResult{}, s.deny(ctx, in, nil, nil, domain.ErrServiceUnavailable, domain.DenialMaintenance, details...)
	}
	if !state.DelegationEnabled {
		return IssueResult{}, s.deny(ctx, in, nil, nil, domain.ErrServiceUnavailable, domain.DenialKillSwitch)
	}

	// Step 3: client credentials, constant time on every failure path.
	client, err := s.clients.ValidateCredentials(ctx, in.ClientID, in.ClientSecret)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return IssueResult{}, s.deny(ctx, in, &in.ClientID, nil, domain.ErrUnauthorized, domain.DenialBadCredentials)
		}
		return IssueResult{}, fmt.Errorf("delegation.IssueToken credentials: %w", err)
	}

	// Step 4: per-client rate limit, atomic increment-and-compare so two
	// concurrent requests cannot both pass a check the second should fail.
	limited, err := s.clients.ConsumeWindow(ctx, client.ID, client.RateLimitPerHour, now)
	if err != nil {
		return IssueResult{}, fmt.Errorf("delegation.IssueToken rate window: %w", err)
	}
	issued := false
	defer func() {
		if issued {
			return
		}
		if rerr := s.clients.ReleaseWindow(ctx, client.ID, now); rerr != nil {
			s.log.WarnContext(ctx, "release rate window",
				slog.String("client_id", client.ID.String()),
				slog.String("error", rerr.Error()))
		}
	}()
	if limited {
		return IssueResult{}, s.deny(ctx, in, &client.ID, nil, domain.ErrRateLimited, domain.DenialRateLimited)
	}

	// Step 5: resolve the delegator behind the external identity. The
	// clinician liveness check inside is never cached.
	delegator, err := s.resolver.Resolve(ctx, in.ExternalIdentity)
	if err != nil {
		var denial *domain.DenialError
		if errors.As(err, &denial) {
			s.auditDenial(ctx, in, &client.ID, nil, denial)
			return IssueResult{}, denial
		}
		return IssueResult{}, fmt.Errorf("delegation.IssueToken resolve: %w", err)
	}

	// Step 6: every requested scope must pass all four checks. The granted
	// set equals the requested set; there is no silent scope reduction.
	for _, scope := range in.Scopes {
		def, err := s.catalog.Get(scope)
		if err != nil {
			return IssueResult{}, s.deny(ctx, in, &client.ID, &delegator.ID,
				domain.ErrForbidden, domain.DenialUnknownScope, string(scope))
		}
		if !s.catalog.IsBotEligible(scope) {
			return IssueResult{}, s.deny(ctx, in, &client.ID, &delegator.ID,
				domain.ErrForbidden, domain.DenialForbiddenForBots, string(scope))
		}
		if !client.ScopeAllowed(scope) {
			return IssueResult{}, s.deny(ctx, in, &client.ID, &delegator.ID,
				domain.ErrForbidden, domain.DenialBotNotAuthorized, string(scope))
		}
		if def.RequiresPrivilegedDelegator && !delegator.Role.Privileged() {
			return IssueResult{}, s.deny(ctx, in, &client.ID, &delegator.ID,
				domain.ErrForbidden, domain.DenialRoleRequired, string(scope))
		}
	}

	// Step 7: mint.
	token, jti, expiresAt, err := s.tokens.Mint(delegator.ID, client.ID, in.Scopes, in.TTL)
	if err != nil {
		return IssueResult{}, fmt.Errorf("delegation.IssueToken mint: %w", err)
	}

	// Step 8: the success audit record. A token that cannot be audited is
	// not handed out.
	rec := domain.AuditRecord{
		EventType:       domain.EventTokenIssued,
		DelegateID:      &client.ID,
		DelegatorID:     &delegator.ID,
		RequestedScopes: in.Scopes,
		GrantedScopes:   in.Scopes,
		TokenJTI:        &jti,
		Outcome:         domain.OutcomeIssued,
		CallerAddr:      in.CallerAddr,
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		return IssueResult{}, fmt.Errorf("delegation.IssueToken audit: %w", err)
	}

	// Step 9: counters advance only now, on the success path.
	issued = true
	if err := s.clients.RecordIssuance(ctx, client.ID); err != nil {
		// Observability counter only; the token is already out.
		s.log.ErrorContext(ctx, "record issuance",
			slog.String("client_id", client.ID.String()),
			slog.String("error", err.Error()))
	}
	s.metrics.RecordTokenIssued()

	s.log.InfoContext(ctx, "token issued",
		slog.String("client_id", client.ID.String()),
		slog.String("delegator_id", delegator.ID.String()),
		slog.String("jti", jti.String()),
		slog.Int("scopes", len(in.Scopes)))

	return IssueResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
		Scope:       joinScopes(in.Scopes),
		JTI:         jti,
		ExpiresAt:   expiresAt,
	}, nil
}

// deny builds the DenialError for a failed step and audit-logs it.
func (s *Service) deny(
	ctx context.Context,
	in IssueInput,
	delegateID, delegatorID *uuid.UUID,
	sentinel error,
	reason domain.DenialReason,
	details ...string,
) error {
	denial := domain.NewDenial(sentinel, reason, details...)
	s.auditDenial(ctx, in, delegateID, delegatorID, denial)
	return denial
}

// auditDenial appends the single audit record for a denied request. An audit
// failure here is logged but does not mask the denial itself.
func (s *Service) auditDenial(ctx context.Context, in IssueInput, delegateID, delegatorID *uuid.UUID, denial *domain.DenialError) {
	reason := denial.Reason
	rec := domain.AuditRecord{
		EventType:       domain.EventTokenDenied,
		DelegateID:      delegateID,
		DelegatorID:     delegatorID,
		RequestedScopes: in.Scopes,
		Outcome:         domain.OutcomeDenied,
		DenialReason:    &reason,
		CallerAddr:      in.CallerAddr,
	}
	if len(denial.Details) > 0 {
		rec.Context = map[string]any{"details": denial.Details}
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit denial",
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()))
	}
	s.metrics.RecordTokenDenied(string(reason))

	s.log.InfoContext(ctx, "token denied",
		slog.String("reason", string(reason)),
		slog.String("external_identity", in.ExternalIdentity))
}

func joinScopes(scopes []domain.ScopeName) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
