// Пакет model. Модели данных клиента
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// UserID - непрозрачный идентификатор пользователя.
// Сервис отдает его числом, но клиент не делает никаких предположений о формате
type UserID string

// UnmarshalJSON принимает как число, так и строку
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User - данные пользователя без токена
type User struct {
	ID       UserID `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Session - аутентифицированный пользователь и его bearer-токен.
// Создается только через NewSession: сессия либо заполнена целиком, либо отсутствует
type Session struct {
	user  User
	token string
}

// ErrPartialSession - не заполнено одно из полей сессии
var ErrPartialSession = errors.New("session is partially populated")

// NewSession проверяет, что все четыре поля заполнены
func NewSession(user User, token string) (Session, error) {
	var missing []string
	if user.ID == "" {
		missing = append(missing, "id")
	}
	if user.Email == "" {
		missing = append(missing, "email")
	}
	if user.Username == "" {
		missing = append(missing, "username")
	}
	if token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return Session{}, fmt.Errorf("%w: missing %s", ErrPartialSession, strings.Join(missing, ", "))
	}
	return Session{user: user, token: token}, nil
}

func (s Session) UserID() UserID   { return s.user.ID }
func (s Session) Email() string    { return s.user.Email }
func (s Session) Username() string { return s.user.Username }
func (s Session) Token() string    { return s.token }
func (s Session) User() User       { return s.user }

// ViewState - активный экран клиента
type ViewState string

const (
	ViewHome   ViewState = "home"
	ViewSignIn ViewState = "signin"
	ViewSignUp ViewState = "signup"
)

// ShortenedLink - сокращенная ссылка
type ShortenedLink struct {
	TargetURL string
	ShortKey  string
	AdminKey  string
	OwnerID   *UserID
}

// ErrNotAbsoluteURL - адрес ссылки не является абсолютным URL
var ErrNotAbsoluteURL = errors.New("target url is not absolute")

// NewShortenedLink проверяет, что адрес разбирается как абсолютный URL
func NewShortenedLink(targetURL, shortKey string, owner *UserID) (ShortenedLink, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return ShortenedLink{}, fmt.Errorf("%w: %v", ErrNotAbsoluteURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return ShortenedLink{}, fmt.Errorf("%w: %s", ErrNotAbsoluteURL, targetURL)
	}
	if shortKey == "" {
		return ShortenedLink{}, errors.New("short key is empty")
	}
	return ShortenedLink{TargetURL: targetURL, ShortKey: shortKey, OwnerID: owner}, nil
}

// FormErrors - ошибки полей формы. Отсутствие поля означает, что оно валидно
type FormErrors map[string]string

// Valid - ошибок нет
func (fe FormErrors) Valid() bool {
	return len(fe) == 0
}

// Fields возвращает имена полей с ошибками в стабильном порядке
func (fe FormErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clone копия для выдачи наружу
func (fe FormErrors) Clone() FormErrors {
	if fe == nil {
		return nil
	}
	c := make(FormErrors, len(fe))
	for k, v := range fe {
		c[k] = v
	}
	return c
}
