package policy

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AccessPolicy is the single source of the admin allow-list. Emails are
// compared exactly, case included.
type AccessPolicy struct {
	admins map[string]struct{}
	list   []string
}

type policyFile struct {
	AdminEmails []string `yaml:"adminEmails" validate:"required,min=1,dive,email"`
}

var validate = validator.New()

func New(adminEmails []string) *AccessPolicy {
	p := &AccessPolicy{admins: make(map[string]struct{}, len(adminEmails))}
	for _, email := range adminEmails {
		if _, dup := p.admins[email]; dup || email == "" {
			continue
		}
		p.admins[email] = struct{}{}
		p.list = append(p.list, email)
	}
	return p
}

// LoadFromPath reads a YAML policy file:
//
//	adminEmails:
//	  - admin@admin.com
func LoadFromPath(path string) (*AccessPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read access policy: %w", err)
	}

	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse access policy: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("access policy validation failed: %w", err)
	}

	return New(f.AdminEmails), nil
}

func (p *AccessPolicy) IsAdmin(email string) bool {
	_, ok := p.admins[email]
	return ok
}

func (p *AccessPolicy) AdminEmails() []string {
	out := make([]string, len(p.list))
	copy(out, p.list)
	return out
}
