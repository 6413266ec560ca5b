package providers

import (
	"blueghost/internal/structures"
	"errors"
	"fmt"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	return cv.validateCredentials()
}

// validateCredentials covers the slice of logins, which struct tags do not reach.
func (cv *CnfValidator) validateCredentials() error {
	if len(cv.conf.Credentials) == 0 {
		return errors.New("credentials: at least one login is required")
	}
	seen := make(map[string]struct{}, len(cv.conf.Credentials))
	for i, c := range cv.conf.Credentials {
		if c.Username == "" {
			return fmt.Errorf("credentials[%d]: username is required", i)
		}
		if c.PasswordHash == "" {
			return fmt.Errorf("credentials[%d]: passwordHash is required", i)
		}
		if _, dup := seen[c.Username]; dup {
			return fmt.Errorf("credentials[%d]: duplicate username %q", i, c.Username)
		}
		seen[c.Username] = struct{}{}
	}
	return nil
}
