package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks credentials before they reach the repository.
type Validator interface {
	ValidateRegister(c Credentials) error
	ValidateLogin(c Credentials) error
}

type CredentialsValidator struct {
	validate *validator.Validate
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateRegister requires a syntactically valid email and a non-empty password.
// No length or complexity policy is applied to the password.
func (v *CredentialsValidator) ValidateRegister(c Credentials) error {
	if err := v.validate.Struct(c); err != nil {
		return describe(err)
	}
	return nil
}

// ValidateLogin only checks the shape of the email.
func (v *CredentialsValidator) ValidateLogin(c Credentials) error {
	if err := v.validate.Var(c.Email, "required,email"); err != nil {
		return describe(err)
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if field == "" {
		field = "email"
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
