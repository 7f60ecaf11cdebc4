package domain

// ScopeName identifies a capability in the scope catalog, e.g. "patient:read".
type ScopeName string

// ActionKind classifies what a scope lets the holder do.
type ActionKind string

const (
	ActionRead     ActionKind = "read"
	ActionDraft    ActionKind = "draft"
	ActionGenerate ActionKind = "generate"
	ActionWrite    ActionKind = "write"
	ActionFinalize ActionKind = "finalize"
	ActionSign     ActionKind = "sign"
)

// MutatesRecord reports whether the action kind produces authoritative
// clinical content. Such scopes are never delegated to bots, regardless of
// catalog or client configuration.
func (k ActionKind) MutatesRecord() bool {
	return k == ActionWrite || k == ActionFinalize || k == ActionSign
}

// ScopeDefinition is a single entry of the static scope catalog.
type ScopeDefinition struct {
	Name                        ScopeName
	ActionKind                  ActionKind
	BotEligible                 bool
	RequiresPrivilegedDelegator bool
}
