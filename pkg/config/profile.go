package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hamjambo/hare-report-mailer/env"
)

const (
	DefaultSubject        = "hare Report"
	DefaultAdminRecipient = "solutions@hamjambo.com"
	DefaultSenderName     = "hare"
	DefaultAdminSender    = "hare@hamjambo.com"
	DefaultUserSender     = "solutions@hamjambo.com"
	DefaultHeaderImage    = "https://hamjambo-online-store.vercel.app/hare/IMG-20220915-WA0000.jpg"
	DefaultFooterImage    = "https://hamjambo-online-store.vercel.app/hare/IMG-20220915-WA0001.jpg"
	DefaultGreeting       = "Hujambo"
)

// Profile describes who report mails come from and go to, and how they are branded.
type Profile struct {
	Subject  string `yaml:"subject"`
	Greeting string `yaml:"greeting"`
	Admin    Admin  `yaml:"admin"`
	User     Sender `yaml:"user"`
	Images   Images `yaml:"images"`
}

// Sender is the identity a copy of the report is sent from.
type Sender struct {
	SenderName    string `yaml:"senderName"`
	SenderAddress string `yaml:"senderAddress"`
}

type Admin struct {
	Recipient string `yaml:"recipient"`
	Sender    `yaml:",inline"`
}

type Images struct {
	Header string `yaml:"header"`
	Footer string `yaml:"footer"`
}

// DefaultProfile returns the profile used when no profile file is configured.
func DefaultProfile() *Profile {
	return &Profile{
		Subject:  DefaultSubject,
		Greeting: DefaultGreeting,
		Admin: Admin{
			Recipient: DefaultAdminRecipient,
			Sender: Sender{
				SenderName:    DefaultSenderName,
				SenderAddress: DefaultAdminSender,
			},
		},
		User: Sender{
			SenderName:    DefaultSenderName,
			SenderAddress: DefaultUserSender,
		},
		Images: Images{
			Header: DefaultHeaderImage,
			Footer: DefaultFooterImage,
		},
	}
}

// LoadProfile reads the profile file named by the environment, or returns the defaults when none is set.
func LoadProfile(cfg *env.Config) (*Profile, error) {
	if cfg.ProfilePath == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(cfg.ProfilePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mailing profile file")
	}

	profile, err := ParseProfile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load mailing profile %s", cfg.ProfilePath)
	}

	return profile, nil
}

// ParseProfile overlays the YAML document on top of the defaults.
func ParseProfile(data []byte) (*Profile, error) {
	profile := DefaultProfile()

	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := profile.validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Domain returns the domain part of the admin sender address.
func (p *Profile) Domain() string {
	_, domain, _ := strings.Cut(p.Admin.SenderAddress, "@")

	return domain
}

func (p *Profile) validate() error {
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("subject must not be empty")
	}

	for _, field := range []struct{ name, value string }{
		{"admin.recipient", p.Admin.Recipient},
		{"admin.senderAddress", p.Admin.SenderAddress},
		{"user.senderAddress", p.User.SenderAddress},
	} {
		if !strings.Contains(field.value, "@") {
			return fmt.Errorf("%s %q is not an email address", field.name, field.value)
		}
	}

	return nil
}
