package domain

import (
	"time"

	"github.com/google/uuid"
)

// KillSwitchState is the singleton process-wide delegation switch.
// DelegationEnabled=false halts all new token issuance; MaintenanceMode
// additionally carries an operator-facing message.
type KillSwitchState struct {
	DelegationEnabled  bool
	MaintenanceMode    bool
	MaintenanceMessage *string
	DisabledAt         *time.Time
	DisabledBy         *uuid.UUID
	DisabledReason     *string
	UpdatedAt          time.Time
}

// Open reports whether issuance is currently permitted.
func (s KillSwitchState) Open() bool {
	return s.DelegationEnabled && !s.MaintenanceMode
}
