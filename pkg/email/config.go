package email

// Config holds email delivery configuration.
// Notifications are off when NotifyEmail is empty. Without a Postmark server
// token messages are written to DevOutputDir instead of being sent; with one,
// SenderEmail is required.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	NotifyEmail          string `env:"CONTACT_NOTIFY_EMAIL"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`
}

// Enabled reports whether new contacts should trigger a notification.
func (c Config) Enabled() bool {
	return c.NotifyEmail != ""
}

// UsePostmark reports whether real delivery is configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != ""
}
