package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
	usernameRegexPattern = `^[A-Za-z0-9_.]{3,30}$`
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	usernameExp = regexp2.MustCompile(usernameRegexPattern, regexp2.None)
)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errInvalidUsername         = errors.New("the username must be 3 to 30 letters, digits, dots or underscores")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
	errMissingLogin            = errors.New("email or username is required")
)

type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

func (req *SignupRequest) Validate() error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
	if err != nil {
		return err
	}

	if ok, _ := usernameExp.MatchString(req.Username); !ok {
		return errInvalidUsername
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

// LoginRequest accepts either an email or a username.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Username) == "" {
		return errMissingLogin
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

func (req *LoginRequest) Login() string {
	if email := strings.TrimSpace(req.Email); email != "" {
		return strings.ToLower(email)
	}
	return strings.TrimSpace(req.Username)
}
