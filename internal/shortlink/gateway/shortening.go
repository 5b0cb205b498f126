package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
)

// Shortening - шлюз сервиса сокращения ссылок
type Shortening struct {
	client  *resty.Client
	baseURL string
}

func NewShortening(client *resty.Client, baseURL string) *Shortening {
	return &Shortening{
		client:  client,
		baseURL: baseURL,
	}
}

// BaseURL адрес сервиса, от которого строятся короткие ссылки
func (s *Shortening) BaseURL() string {
	return s.baseURL
}

type createRequest struct {
	TargetURL string `json:"target_url"`
}

type createResponse struct {
	TargetURL string `json:"target_url"`
	URL       string `json:"url"`
	AdminURL  string `json:"admin_url"`
}

type linkRecord struct {
	TargetURL string        `json:"target_url"`
	URL       string        `json:"url"`
	Key       string        `json:"key"`
	AdminURL  string        `json:"admin_url"`
	UserID    *model.UserID `json:"user_id"`
}

// request bearer-токен добавляется только если он есть
func (s *Shortening) request(ctx context.Context, token string) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// CreateShortLink создает короткую ссылку. Пустой адрес отклоняется без запроса,
// остальную проверку адреса выполняет сервис
func (s *Shortening) CreateShortLink(ctx context.Context, targetURL, token string) (model.ShortenedLink, error) {
	if targetURL == "" {
		return model.ShortenedLink{}, &ShorteningError{Kind: KindLocal, Message: msgEmptyTargetURL, Base: ErrEmptyTargetURL}
	}

	endpoint, err := url.JoinPath(s.baseURL, "url")
	if err != nil {
		return model.ShortenedLink{}, &ShorteningError{Kind: KindGeneric, Message: msgShortenFailed, Base: err}
	}

	resp, err := s.request(ctx, token).
		SetBody(createRequest{TargetURL: targetURL}).
		Post(endpoint)
	if err != nil || !resp.IsSuccess() {
		f := classify(resp, err, msgShortenFailed, false)
		return model.ShortenedLink{}, &ShorteningError{Kind: f.kind, Message: f.message, Status: f.status, Base: f.base}
	}

	var cr createResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return model.ShortenedLink{}, &ShorteningError{Kind: KindMalformed, Message: msgShortenFailed, Status: resp.StatusCode(), Base: err}
	}
	if cr.TargetURL == "" {
		cr.TargetURL = targetURL
	}

	link, err := model.NewShortenedLink(cr.TargetURL, cr.URL, nil)
	if err != nil {
		return model.ShortenedLink{}, &ShorteningError{Kind: KindMalformed, Message: msgShortenFailed, Status: resp.StatusCode(), Base: errors.Join(ErrMalformed, err)}
	}
	link.AdminKey = cr.AdminURL

	return link, nil
}

// ListMyLinks возвращает ссылки владельца токена.
// Записи без ключа или с неабсолютным адресом пропускаются
func (s *Shortening) ListMyLinks(ctx context.Context, token string) ([]model.ShortenedLink, error) {
	endpoint, err := url.JoinPath(s.baseURL, "user/urls")
	if err != nil {
		return nil, &ListingError{Kind: KindGeneric, Message: msgListFailed, Base: err}
	}

	resp, err := s.request(ctx, token).Get(endpoint)
	if err != nil || !resp.IsSuccess() {
		f := classify(resp, err, msgListFailed, false)
		return nil, &ListingError{Kind: f.kind, Message: f.message, Status: f.status, Base: f.base}
	}

	var records []linkRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, &ListingError{Kind: KindMalformed, Message: msgListFailed, Status: resp.StatusCode(), Base: errors.Join(ErrMalformed, err)}
	}

	links := make([]model.ShortenedLink, 0, len(records))
	for _, r := range records {
		key := r.URL
		if key == "" {
			key = r.Key
		}
		link, err := model.NewShortenedLink(r.TargetURL, key, r.UserID)
		if err != nil {
			continue
		}
		link.AdminKey = r.AdminURL
		links = append(links, link)
	}

	return links, nil
}
