// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Wizard        WizardConfig       `mapstructure:"wizard"`
	Prefill       PrefillConfig      `mapstructure:"prefill"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	MetricsPath string `mapstructure:"metrics_path"`
	// StepsCatalog is an optional path to a step catalog JSON file. Empty
	// means the built-in catalog.
	StepsCatalog string `mapstructure:"steps_catalog"`
}

// WizardConfig holds the navigation policy configuration. Policies are fixed
// at session construction; they never vary per edit.
type WizardConfig struct {
	// DefaultPolicy applies to every step without an explicit override.
	// One of "strict" or "lenient".
	DefaultPolicy string `mapstructure:"default_policy"`
	// StepPolicies overrides the policy for individual steps, keyed by step id
	// (e.g. "program_specific": "lenient").
	StepPolicies map[string]string `mapstructure:"step_policies"`
}

// PrefillConfig holds settings for the document prefill collaborator.
type PrefillConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	LatencyMS    int  `mapstructure:"latency_ms"`     // simulated OCR latency
	TimeoutMS    int  `mapstructure:"timeout_ms"`     // per-batch deadline
	CacheTTLMins int  `mapstructure:"cache_ttl_mins"` // OCR result cache TTL
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NotificationConfig holds settings for the acknowledgement notifier.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate checks configuration values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Wizard.DefaultPolicy {
	case "", "strict", "lenient":
	default:
		return fmt.Errorf("wizard.default_policy must be strict or lenient, got %q", c.Wizard.DefaultPolicy)
	}
	for step, policy := range c.Wizard.StepPolicies {
		if policy != "strict" && policy != "lenient" {
			return fmt.Errorf("wizard.step_policies[%s] must be strict or lenient, got %q", step, policy)
		}
	}
	if c.Prefill.LatencyMS < 0 || c.Prefill.TimeoutMS < 0 {
		return fmt.Errorf("prefill latency/timeout must not be negative")
	}
	return nil
}
