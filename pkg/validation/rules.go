package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages reported by the account rule set, in check order.
const (
	MsgNameRequired      = "Name is required and must be a non-empty string"
	MsgNameTooLong       = "Name must be less than 100 characters"
	MsgEmailRequired     = "Email is required and must be a string"
	MsgEmailInvalid      = "Email must be a valid email address"
	MsgPasswordRequired  = "Password is required and must be a string"
	MsgPasswordTooShort  = "Password must be at least 6 characters long"
	MsgPasswordTooLong   = "Password must be less than 128 characters"
	MsgLoginEmailMissing = "Email is required"
	MsgLoginPwdMissing   = "Password is required"
)

// EmailTag is the validator tag for the account email shape.
const EmailTag = "account_email"

const (
	MaxNameLength     = 100
	MaxEmailLength    = 254
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// emailPattern only knows ASCII whitespace; hasBlank covers the rest.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	nameRule        = "max=" + strconv.Itoa(MaxNameLength)
	emailRule       = EmailTag + ",max=" + strconv.Itoa(MaxEmailLength)
	passwordMinRule = "min=" + strconv.Itoa(MinPasswordLength)
	passwordMaxRule = "max=" + strconv.Itoa(MaxPasswordLength)
)

// engine is safe for concurrent use once the tag is registered.
var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(EmailTag, isAccountEmail); err != nil {
		panic(err)
	}
	return v
}

func isAccountEmail(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return !hasBlank(s) && emailPattern.MatchString(s)
}

// hasBlank reports Unicode whitespace, the BOM or NUL anywhere in s.
func hasBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF' || r == 0
	}) >= 0
}

// Payload is a decoded request body of unknown shape.
type Payload map[string]any

// String returns the value under key when it is a string.
func (p Payload) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	s, ok := p[key].(string)
	return s, ok
}

// Result lists every rule a payload broke.
type Result struct {
	Valid  bool
	Errors []string
}

// Message joins the errors the way they are reported to clients.
func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

type checks struct {
	errs []string
}

func (c *checks) fail(msg string) {
	c.errs = append(c.errs, msg)
}

func (c *checks) result() Result {
	return Result{Valid: len(c.errs) == 0, Errors: c.errs}
}

// ValidateAccount checks a create payload: name, email, password.
func ValidateAccount(p Payload) Result {
	var c checks
	checkName(&c, p)
	checkEmail(&c, p, MsgEmailRequired)
	checkPassword(&c, p)
	return c.result()
}

// ValidateAccountUpdate checks an update payload: name and email only.
func ValidateAccountUpdate(p Payload) Result {
	var c checks
	checkName(&c, p)
	checkEmail(&c, p, MsgEmailRequired)
	return c.result()
}

// ValidateLogin checks a login payload. The password has no length bound
// here; a wrong password is left to hash comparison.
func ValidateLogin(p Payload) Result {
	var c checks
	checkEmail(&c, p, MsgLoginEmailMissing)
	if pwd, ok := p.String("password"); !ok || pwd == "" {
		c.fail(MsgLoginPwdMissing)
	}
	return c.result()
}

func checkName(c *checks, p Payload) {
	name, ok := p.String("name")
	name = strings.TrimSpace(name)
	// the store cannot hold NUL, so such a name counts as unusable
	if !ok || name == "" || strings.ContainsRune(name, 0) {
		c.fail(MsgNameRequired)
		return
	}
	if engine.Var(name, nameRule) != nil {
		c.fail(MsgNameTooLong)
	}
}

func checkEmail(c *checks, p Payload, missing string) {
	email, ok := p.String("email")
	if !ok || email == "" {
		c.fail(missing)
		return
	}
	if !IsEmail(email) {
		c.fail(MsgEmailInvalid)
	}
}

func checkPassword(c *checks, p Payload) {
	pwd, ok := p.String("password")
	if !ok || pwd == "" {
		c.fail(MsgPasswordRequired)
		return
	}
	switch {
	case engine.Var(pwd, passwordMinRule) != nil:
		c.fail(MsgPasswordTooShort)
	case engine.Var(pwd, passwordMaxRule) != nil:
		c.fail(MsgPasswordTooLong)
	}
}

// IsEmail reports whether s has the local@domain.tld shape and fits the
// 254 character limit.
func IsEmail(s string) bool {
	return engine.Var(s, emailRule) == nil
}
