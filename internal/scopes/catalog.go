// Package scopes holds the static capability-scope catalog. The catalog is
// built once at process start and is read-only afterwards; any scope name not
// present is unknown and always rejected.
package scopes

import (
	"fmt"

	"github.com/clinicore/delegation/internal/domain"
)

// Catalog is the immutable scope registry.
type Catalog struct {
	defs map[domain.ScopeName]domain.ScopeDefinition
}

// New builds a catalog from the given definitions. Duplicate names are an
// error: the catalog is configuration, and silent overwrites hide mistakes.
func New(defs []domain.ScopeDefinition) (*Catalog, error) {
	m := make(map[domain.ScopeName]domain.ScopeDefinition, len(defs))
	for _, d := range defs {
		if _, ok := m[d.Name]; ok {
			return nil, fmt.Errorf("scopes: duplicate scope %q", d.Name)
		}
		m[d.Name] = d
	}
	return &Catalog{defs: m}, nil
}

// Default returns the catalog shipped with the delegation subsystem.
func Default() *Catalog {
	c, err := New([]domain.ScopeDefinition{
		{Name: "patient:read", ActionKind: domain.ActionRead, BotEligible: true},
		{Name: "chart:read", ActionKind: domain.ActionRead, BotEligible: true},
		{Name: "dailynote:draft", ActionKind: domain.ActionDraft, BotEligible: true},
		{Name: "prescription:draft", ActionKind: domain.ActionDraft, BotEligible: true, RequiresPrivilegedDelegator: true},
		{Name: "form:generate", ActionKind: domain.ActionGenerate, BotEligible: true},
		{Name: "note:write", ActionKind: domain.ActionWrite, BotEligible: false},
		{Name: "note:finalize", ActionKind: domain.ActionFinalize, BotEligible: false},
		{Name: "prescription:sign", ActionKind: domain.ActionSign, BotEligible: false, RequiresPrivilegedDelegator: true},
	})
	if err != nil {
		panic(err) // static definitions above, unreachable
	}
	return c
}

// Get returns the definition for the named scope, or domain.ErrNotFound for
// an unknown scope.
func (c *Catalog) Get(name domain.ScopeName) (domain.ScopeDefinition, error) {
	d, ok := c.defs[name]
	if !ok {
		return domain.ScopeDefinition{}, fmt.Errorf("scope %q: %w", name, domain.ErrNotFound)
	}
	return d, nil
}

// IsBotEligible reports whether the named scope may ever be granted to a bot.
// Scopes whose action kind mutates the authoritative record are never bot
// eligible, regardless of how the definition is flagged.
func (c *Catalog) IsBotEligible(name domain.ScopeName) bool {
	d, ok := c.defs[name]
	return ok && d.BotEligible && !d.ActionKind.MutatesRecord()
}

// RequiresPrivilegedDelegator reports whether the named scope may only be
// delegated by a clinician in a privileged role.
func (c *Catalog) RequiresPrivilegedDelegator(name domain.ScopeName) bool {
	d, ok := c.defs[name]
	return ok && d.RequiresPrivilegedDelegator
}
