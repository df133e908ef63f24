package config

// Config is the top-level rsvpbridge configuration, corresponding to rsvpbridge.yml.
type Config struct {
	VerifyToken            string        `yaml:"verify_token" koanf:"verify_token"`
	PhoneNumberID          string        `yaml:"phone_number_id" koanf:"phone_number_id"`
	AccessToken            string        `yaml:"access_token" koanf:"access_token"`
	Port                   int           `yaml:"port" koanf:"port"`
	APIBaseURL             string        `yaml:"api_base_url" koanf:"api_base_url"`
	APIVersion             string        `yaml:"api_version" koanf:"api_version"`
	WebhookPath            string        `yaml:"webhook_path" koanf:"webhook_path"`
	SendTimeoutSeconds     int           `yaml:"send_timeout_seconds" koanf:"send_timeout_seconds"`
	ShutdownTimeoutSeconds int           `yaml:"shutdown_timeout_seconds" koanf:"shutdown_timeout_seconds"`
	TriggerPhrase          string        `yaml:"trigger_phrase" koanf:"trigger_phrase"`
	Messages               MessageConfig `yaml:"messages" koanf:"messages"`
	Ticket                 TicketConfig  `yaml:"ticket" koanf:"ticket"`
}

// MessageConfig holds the reply texts sent to guests.
type MessageConfig struct {
	Prompt        string `yaml:"prompt" koanf:"prompt"`
	ConfirmLabel  string `yaml:"confirm_label" koanf:"confirm_label"`
	DeclineLabel  string `yaml:"decline_label" koanf:"decline_label"`
	TicketCaption string `yaml:"ticket_caption" koanf:"ticket_caption"`
	DeclineText   string `yaml:"decline_text" koanf:"decline_text"`
}

// TicketConfig controls the QR code image sent on confirmation.
type TicketConfig struct {
	QRBaseURL string `yaml:"qr_base_url" koanf:"qr_base_url"`
	QRSize    string `yaml:"qr_size" koanf:"qr_size"`
}
