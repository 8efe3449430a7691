package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Credits.validate(); err != nil {
		return fmt.Errorf("credits: %w", err)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if err := c.Generator.validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (c *CreditsConfig) validate() error {
	if c.DefaultBalance < 0 {
		return fmt.Errorf("default_balance must be >= 0 (got %d)", c.DefaultBalance)
	}
	if c.GenerationCost <= 0 {
		return fmt.Errorf("generation_cost must be > 0 (got %d)", c.GenerationCost)
	}
	if c.MaxBalanceRetries < 1 {
		return fmt.Errorf("max_balance_retries must be >= 1 (got %d)", c.MaxBalanceRetries)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Driver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", CacheDriverMemory, CacheDriverRedis, c.Driver)
	}
	return nil
}

func (c *GeneratorConfig) validate() error {
	switch c.Provider {
	case GeneratorProviderStub:
	case GeneratorProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", c.Provider)
		}
		if c.MaxTokens <= 0 {
			return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
		}
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", GeneratorProviderStub, GeneratorProviderAnthropic, c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", c.Timeout)
	}
	if c.CompensationTimeout <= 0 {
		return fmt.Errorf("compensation_timeout must be > 0 (got %s)", c.CompensationTimeout)
	}
	return nil
}
