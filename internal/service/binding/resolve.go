package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/delegation/internal/domain"
)

// Resolve maps an external identity to a usable delegator. The binding must
// exist, be verified, have delegation enabled, and the referenced clinician
// must be active right now; the clinician check is live, never cached, so
// offboarding takes effect immediately. Each failure carries its own denial
// reason for the audit log.
func (s *Service) Resolve(ctx context.Context, externalIdentity string) (domain.Clinician, error) {
	b, err := s.bindings.GetByExternalIdentity(ctx, externalIdentity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Clinician{}, domain.NewDenial(domain.ErrForbidden, domain.DenialNoBinding)
		}
		return domain.Clinician{}, fmt.Errorf("binding.Resolve: %w", err)
	}

	if !b.Verified {
		return domain.Clinician{}, domain.NewDenial(domain.ErrForbidden, domain.DenialUnverified)
	}
	if !b.DelegationEnabled {
		return domain.Clinician{}, domain.NewDenial(domain.ErrForbidden, domain.DenialDelegationDisabled)
	}

	clinician, err := s.clinicians.GetByID(ctx, b.ClinicianID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Clinician{}, domain.NewDenial(domain.ErrForbidden, domain.DenialDelegatorInactive)
		}
		return domain.Clinician{}, fmt.Errorf("binding.Resolve get clinician: %w", err)
	}
	if !clinician.EligibleDelegator() {
		return domain.Clinician{}, domain.NewDenial(domain.ErrForbidden, domain.DenialDelegatorInactive)
	}

	return clinician, nil
}
