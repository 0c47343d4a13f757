package wizards

import (
	"strings"

	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/form"
)

// OTPLength is the number of digits in a verification code.
const OTPLength = 6

// SignInStep is the single step of the sign-in form.
type SignInStep string

const SignInCredentials SignInStep = "credentials"

// SignInDefinition returns the sign-in form. Submitting it is a request.
func SignInDefinition() flow.Definition[SignInStep] {
	return flow.Definition[SignInStep]{
		Name:  "sign-in",
		Steps: []SignInStep{SignInCredentials},
		Validators: map[SignInStep]form.Validator{
			SignInCredentials: form.Required(FieldEmail, FieldPassword),
		},
		Submits: map[SignInStep]bool{SignInCredentials: true},
	}
}

// SignInDefaults returns the empty credential fields.
func SignInDefaults() map[string]any {
	return map[string]any{FieldEmail: "", FieldPassword: ""}
}

// SignUpStep is a step of account creation.
type SignUpStep int

const (
	SignUpAccount SignUpStep = iota + 1
	SignUpVerify
)

func (s SignUpStep) String() string {
	switch s {
	case SignUpAccount:
		return "account"
	case SignUpVerify:
		return "verify"
	}
	return "unknown"
}

// SignUpDefinition returns the two-step sign-up wizard. Both steps submit.
func SignUpDefinition() flow.Definition[SignUpStep] {
	return flow.Definition[SignUpStep]{
		Name:  "sign-up",
		Steps: []SignUpStep{SignUpAccount, SignUpVerify},
		Validators: map[SignUpStep]form.Validator{
			SignUpAccount: func(d *form.Data) bool { return IsSignUpStepValid(SignUpAccount, d) },
			SignUpVerify:  func(d *form.Data) bool { return IsSignUpStepValid(SignUpVerify, d) },
		},
		Submits: map[SignUpStep]bool{SignUpAccount: true, SignUpVerify: true},
	}
}

// SignUpDefaults returns the empty sign-up fields.
func SignUpDefaults() map[string]any {
	return map[string]any{
		FieldEmail:           "",
		FieldPassword:        "",
		FieldConfirmPassword: "",
		FieldOTP:             "",
	}
}

// IsSignUpStepValid gates the sign-up steps. The account step requires a
// password matching its confirmation; the verify step requires a full code.
func IsSignUpStepValid(step SignUpStep, d *form.Data) bool {
	switch step {
	case SignUpAccount:
		return PasswordsMatch(d.String(FieldPassword), d.String(FieldConfirmPassword))
	case SignUpVerify:
		return ValidOTP(d.String(FieldOTP))
	}
	return false
}

// PasswordsMatch reports whether both are non-empty and identical.
func PasswordsMatch(password, confirm string) bool {
	return password != "" && password == confirm
}

// SanitizeOTP keeps the digits of s, up to OTPLength of them.
func SanitizeOTP(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == OTPLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidOTP reports whether code holds exactly OTPLength digits once sanitized.
func ValidOTP(code string) bool {
	return len(SanitizeOTP(code)) == OTPLength
}
