package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
)

// Auth - шлюз сервиса аутентификации
type Auth struct {
	client  *resty.Client
	baseURL string
}

func NewAuth(client *resty.Client, baseURL string) *Auth {
	return &Auth{
		client:  client,
		baseURL: baseURL,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type authResponse struct {
	ID          model.UserID `json:"id"`
	Email       string       `json:"email"`
	Username    string       `json:"username"`
	AccessToken string       `json:"access_token"`
}

// SignIn вход по email и паролю
func (a *Auth) SignIn(ctx context.Context, email, password string) (model.Session, error) {
	return a.post(ctx, "auth/signin", signInRequest{
		Email:    email,
		Password: password,
	}, msgSignInFailed, false)
}

// SignUp регистрация. Полное имя не отправляется, только производное имя пользователя
func (a *Auth) SignUp(ctx context.Context, email, password, username string) (model.Session, error) {
	return a.post(ctx, "auth/signup", signUpRequest{
		Email:    email,
		Password: password,
		Username: username,
	}, msgSignUpFailed, true)
}

func (a *Auth) post(ctx context.Context, path string, body any, generic string, acceptMessage bool) (model.Session, error) {
	endpoint, err := url.JoinPath(a.baseURL, path)
	if err != nil {
		return model.Session{}, &AuthError{Kind: KindGeneric, Message: generic, Base: err}
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(endpoint)
	if err != nil || !resp.IsSuccess() {
		f := classify(resp, err, generic, acceptMessage)
		return model.Session{}, &AuthError{Kind: f.kind, Message: f.message, Status: f.status, Base: f.base}
	}

	var ar authResponse
	if err := json.Unmarshal(resp.Body(), &ar); err != nil || ar.AccessToken == "" {
		return model.Session{}, &AuthError{Kind: KindMalformed, Message: msgMalformed, Status: resp.StatusCode(), Base: ErrMalformed}
	}

	sess, err := model.NewSession(model.User{
		ID:       ar.ID,
		Email:    ar.Email,
		Username: ar.Username,
	}, ar.AccessToken)
	if err != nil {
		return model.Session{}, &AuthError{Kind: KindMalformed, Message: msgMalformed, Status: resp.StatusCode(), Base: err}
	}

	return sess, nil
}
