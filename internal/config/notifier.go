package config

// NotifierConfig holds Discord notification configuration.
type NotifierConfig struct {
	// WebhookURL is the Discord webhook endpoint. Empty disables notifications.
	WebhookURL string
}

// LoadNotifierConfigFromEnv loads notifier configuration from environment variables.
func LoadNotifierConfigFromEnv() NotifierConfig {
	return NotifierConfig{
		WebhookURL: GetEnv("DISCORD_WEBHOOK_URL", ""),
	}
}

// Enabled reports whether a webhook destination is configured.
func (c NotifierConfig) Enabled() bool {
	return c.WebhookURL != ""
}
