package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// maxTokenTTLCeiling is the hard upper bound on delegated token lifetime.
// Configuration may lower it but never raise it.
const maxTokenTTLCeiling = 10 * time.Minute

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Delegation.JWTSecret) < 32 {
		return fmt.Errorf("delegation.jwt_secret must be at least 32 characters (got %d)", len(c.Delegation.JWTSecret))
	}

	if c.Delegation.MaxTokenTTL <= 0 {
		return fmt.Errorf("delegation.max_token_ttl must be > 0 (got %v)", c.Delegation.MaxTokenTTL)
	}
	if c.Delegation.MaxTokenTTL > maxTokenTTLCeiling {
		return fmt.Errorf("delegation.max_token_ttl must not exceed %v (got %v)", maxTokenTTLCeiling, c.Delegation.MaxTokenTTL)
	}

	if c.Delegation.SecretHashCost < bcrypt.MinCost || c.Delegation.SecretHashCost > bcrypt.MaxCost {
		return fmt.Errorf("delegation.secret_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Delegation.SecretHashCost)
	}

	if c.Delegation.DefaultRateLimitPerHour <= 0 {
		return fmt.Errorf("delegation.default_rate_limit_per_hour must be > 0 (got %d)", c.Delegation.DefaultRateLimitPerHour)
	}

	if c.Draft.TTL <= 0 {
		return fmt.Errorf("draft.ttl must be > 0 (got %v)", c.Draft.TTL)
	}

	if c.KillSwitch.CacheTTL <= 0 || c.KillSwitch.CacheTTL > time.Minute {
		return fmt.Errorf("killswitch.cache_ttl must be in (0, 1m] (got %v)", c.KillSwitch.CacheTTL)
	}

	if c.Binding.VerificationTTL <= 0 {
		return fmt.Errorf("binding.verification_ttl must be > 0 (got %v)", c.Binding.VerificationTTL)
	}

	return nil
}
