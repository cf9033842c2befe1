package mailer

import (
	"fmt"
	"time"
)

// Config holds the SMTP transport settings. Credentials are required and have no defaults.
type Config struct {
	Host     string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int           `envconfig:"SMTP_PORT" default:"465"`
	Username string        `envconfig:"GOOGLE_APP_EMAIL" required:"true"`
	Password string        `envconfig:"GOOGLE_APP_PASSWORD" required:"true"`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"30s"`
}

// String renders the config for logging. The password is never included.
func (c *Config) String() string {
	return fmt.Sprintf("host=%s port=%d username=%s timeout=%v", c.Host, c.Port, c.Username, c.Timeout)
}
