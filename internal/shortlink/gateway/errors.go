package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// Kind - класс ошибки обращения к сервису
type Kind int

const (
	// KindGeneric ошибка без подробностей
	KindGeneric Kind = iota
	// KindRemote сервис вернул структурированное описание ошибки
	KindRemote
	// KindConnectivity запрос отправлен, ответа нет
	KindConnectivity
	// KindMalformed ответ сервиса не разбирается
	KindMalformed
	// KindLocal запрос отклонен до отправки
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindConnectivity:
		return "connectivity"
	case KindMalformed:
		return "malformed"
	case KindLocal:
		return "local"
	default:
		return "generic"
	}
}

// Тексты уведомлений
const (
	msgSignInFailed   = "Login failed"
	msgSignUpFailed   = "Failed to create account. Please try again."
	msgShortenFailed  = "Failed to shorten URL"
	msgListFailed     = "Failed to fetch links"
	msgConnectivity   = "Unable to connect to server. Please check your connection."
	msgMalformed      = "Invalid response from server"
	msgEmptyTargetURL = "Please enter a URL to shorten"
)

var (
	ErrEmptyTargetURL = errors.New("target url is empty")
	ErrMalformed      = errors.New("malformed response")
)

// AuthError - ошибка входа или регистрации
type AuthError struct {
	Kind    Kind
	Message string
	Status  int
	Base    error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Base }

// ShorteningError - ошибка создания короткой ссылки
type ShorteningError struct {
	Kind    Kind
	Message string
	Status  int
	Base    error
}

func (e *ShorteningError) Error() string { return e.Message }
func (e *ShorteningError) Unwrap() error { return e.Base }

// ListingError - ошибка получения ссылок пользователя
type ListingError struct {
	Kind    Kind
	Message string
	Status  int
	Base    error
}

func (e *ListingError) Error() string {
	if e.Base != nil {
		return e.Message + ": " + e.Base.Error()
	}
	return e.Message
}
func (e *ListingError) Unwrap() error { return e.Base }

// failure - результат классификации неудачного запроса
type failure struct {
	kind    Kind
	message string
	status  int
	base    error
}

// classify выбирает ровно одно сообщение: описание ошибки от сервиса,
// сообщение о недоступности сервиса или общее сообщение
func classify(resp *resty.Response, err error, generic string, acceptMessage bool) failure {
	if err != nil {
		if isConnectivity(err) {
			return failure{kind: KindConnectivity, message: msgConnectivity, base: err}
		}
		return failure{kind: KindGeneric, message: generic, base: err}
	}

	status := resp.StatusCode()
	base := errors.New("unexpected status " + strconv.Itoa(status))
	if msg := remoteMessage(resp.Body(), acceptMessage); msg != "" {
		return failure{kind: KindRemote, message: msg, status: status, base: base}
	}
	return failure{kind: KindGeneric, message: generic, status: status, base: base}
}

// isConnectivity - запрос ушел, но ответа нет: отказ соединения, ошибка сети,
// таймаут или обрыв до ответа. Отмена пользователем и ошибки до отправки
// (например, неподдерживаемая схема адреса) сюда не относятся
func isConnectivity(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// *url.Error сам реализует net.Error, поэтому смотрим на причину
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		err = urlErr.Err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// errorBody - описание ошибки в ответе сервиса
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

// remoteMessage достает строковый "detail", а при acceptMessage - и "message".
// Нестроковый "detail" (например, список ошибок валидации) сообщением не считается
func remoteMessage(body []byte, acceptMessage bool) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if s := rawString(eb.Detail); s != "" {
		return s
	}
	if acceptMessage {
		return rawString(eb.Message)
	}
	return ""
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
