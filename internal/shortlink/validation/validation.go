// Пакет validation. Проверка полей форм входа и регистрации
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
)

// Имена полей форм
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldTerms           = "terms"
	FieldUsername        = "username"
)

const (
	signInPasswordMinLen = 6
	signUpPasswordMinLen = 8
	fullNameMinLen       = 2
)

const symbols = `!@#$%^&*(),.?":{}|<>`

var (
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// SignUpForm - поля формы регистрации
type SignUpForm struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Error - локальная ошибка валидации. До сети не доходит
type Error struct {
	Fields model.FormErrors
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, f := range e.Fields.Fields() {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e.Fields[f])
	}
	return b.String()
}

// ValidateSignIn проверяет форму входа
func ValidateSignIn(email, password string) model.FormErrors {
	errs := model.FormErrors{}

	checkEmail(errs, email)

	switch {
	case password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(password) < signInPasswordMinLen:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	return errs
}

// ValidateSignUp проверяет форму регистрации
func ValidateSignUp(f SignUpForm) model.FormErrors {
	errs := model.FormErrors{}

	switch name := strings.TrimSpace(f.FullName); {
	case name == "":
		errs[FieldFullName] = "Full name is required"
	case utf8.RuneCountInString(name) < fullNameMinLen:
		errs[FieldFullName] = "Full name must be at least 2 characters"
	}

	checkEmail(errs, f.Email)

	switch {
	case f.Password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < signUpPasswordMinLen:
		errs[FieldPassword] = "Password must be at least 8 characters"
	case !lowerRe.MatchString(f.Password) || !upperRe.MatchString(f.Password) || !digitRe.MatchString(f.Password):
		errs[FieldPassword] = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	}

	switch {
	case f.ConfirmPassword == "":
		errs[FieldConfirmPassword] = "Please confirm your password"
	case f.ConfirmPassword != f.Password:
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	if !f.AcceptTerms {
		errs[FieldTerms] = "You must agree to the terms and conditions"
	}

	return errs
}

func checkEmail(errs model.FormErrors, email string) {
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailRe.MatchString(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}
}

// PasswordStrength - оценка пароля от 0 до 5. Только для подсказки пользователю
func PasswordStrength(password string) int {
	strength := 0
	if utf8.RuneCountInString(password) >= signUpPasswordMinLen {
		strength++
	}
	if lowerRe.MatchString(password) {
		strength++
	}
	if upperRe.MatchString(password) {
		strength++
	}
	if digitRe.MatchString(password) {
		strength++
	}
	if strings.ContainsAny(password, symbols) {
		strength++
	}
	return strength
}

var strengthLabels = [...]string{"Very Weak", "Weak", "Fair", "Good", "Strong"}

// StrengthLabel подпись к оценке PasswordStrength. Для 0 - пустая строка
func StrengthLabel(strength int) string {
	if strength < 1 || strength > len(strengthLabels) {
		return ""
	}
	return strengthLabels[strength-1]
}
