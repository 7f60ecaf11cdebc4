package domain

import "github.com/google/uuid"

// ClinicianRole is the clinical role of a delegating or approving clinician.
// Roles are owned by the surrounding records application; this subsystem only
// reads them.
type ClinicianRole string

const (
	RolePhysician ClinicianRole = "physician"
	RoleResident  ClinicianRole = "resident"
	RoleNurse     ClinicianRole = "nurse"
)

// Privileged reports whether the role may delegate scopes flagged
// requires_privileged_delegator.
func (r ClinicianRole) Privileged() bool {
	return r == RolePhysician
}

// CanAuthor reports whether the role is eligible for clinical authorship,
// i.e. may approve a draft and become its author.
func (r ClinicianRole) CanAuthor() bool {
	return r == RolePhysician || r == RoleResident
}

// ClinicianState is the account state of a clinician in the host application.
type ClinicianState string

const (
	ClinicianActive     ClinicianState = "active"
	ClinicianOnLeave    ClinicianState = "on_leave"
	ClinicianOffboarded ClinicianState = "offboarded"
)

// Clinician is a read-only view of the host application's clinician record,
// carrying just the fields this subsystem needs for eligibility checks.
type Clinician struct {
	ID     uuid.UUID
	Active bool
	State  ClinicianState
	Role   ClinicianRole
}

// EligibleDelegator reports whether the clinician may currently be acted for.
// Checked live at issuance and again at token validation time.
func (c Clinician) EligibleDelegator() bool {
	return c.Active && c.State == ClinicianActive
}
