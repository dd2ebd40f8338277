package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0 (got %d)", c.Server.RateLimit)
	}

	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("gemini.timeout must be > 0 (got %v)", c.Gemini.Timeout)
	}

	if c.Triage.EscalationAfter <= 0 {
		return fmt.Errorf("triage.escalation_after must be > 0 (got %v)", c.Triage.EscalationAfter)
	}
	if c.Triage.MaxReasonLength <= 0 {
		return fmt.Errorf("triage.max_reason_length must be > 0 (got %d)", c.Triage.MaxReasonLength)
	}

	return nil
}
