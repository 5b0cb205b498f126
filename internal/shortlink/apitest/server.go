// Пакет apitest. Поддельный сервис аутентификации и сокращения ссылок для тестов
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/common/rand"
	"github.com/iurnickita/shortlink/internal/shortlink/logger"
	"github.com/iurnickita/shortlink/internal/shortlink/token"
)

// Request - запрос, пришедший на сервис
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          string
}

type user struct {
	id       int
	email    string
	username string
	password string
}

type link struct {
	Key       string `json:"url"`
	SecretKey string `json:"admin_url"`
	TargetURL string `json:"target_url"`
	Clicks    int    `json:"clicks"`
	IsActive  bool   `json:"is_active"`
	UserID    *int   `json:"user_id"`
}

type stub struct {
	status int
	body   string
}

// Server - сервис в памяти поверх httptest.Server
type Server struct {
	*httptest.Server

	mux      sync.Mutex
	secret   []byte
	users    map[string]*user
	links    map[string]*link
	order    []string
	requests []Request
	stubs    map[string]stub
	now      func() time.Time
	zaplog   *zap.Logger
}

type Option func(*Server)

// WithLogger журналирует входящие запросы
func WithLogger(zaplog *zap.Logger) Option {
	return func(s *Server) {
		s.zaplog = zaplog
	}
}

// NewServer запускает сервис. Аутентификация доступна по префиксу /api
func NewServer(opts ...Option) *Server {
	s := &Server{
		secret: []byte(rand.String(32)),
		users:  map[string]*user{},
		links:  map[string]*link{},
		stubs:  map[string]stub{},
		now:    time.Now,
		zaplog: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.newRouter())
	return s
}

// AuthBaseURL адрес для шлюза аутентификации
func (s *Server) AuthBaseURL() string {
	return s.URL + "/api"
}

// ShortenerBaseURL адрес для шлюза сокращения ссылок
func (s *Server) ShortenerBaseURL() string {
	return s.URL
}

func (s *Server) newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestLog(s.zaplog), s.record)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signin", s.signIn)
		r.Post("/signup", s.signUp)
	})
	r.Post("/url", s.createURL)
	r.Get("/user/urls", s.userURLs)
	r.Get("/{key}", s.forward)
	return r
}

// Stub подменяет ответ на method path до вызова Unstub
func (s *Server) Stub(method, path string, status int, body string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.stubs[method+" "+path] = stub{status: status, body: body}
}

// Unstub возвращает обычную обработку
func (s *Server) Unstub(method, path string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.stubs, method+" "+path)
}

// Requests - запросы к path в порядке поступления
func (s *Server) Requests(path string) []Request {
	s.mux.Lock()
	defer s.mux.Unlock()

	var out []Request
	for _, r := range s.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// AddUser регистрирует пользователя в обход API и возвращает его токен
func (s *Server) AddUser(email, username, password string) string {
	s.mux.Lock()
	defer s.mux.Unlock()

	u := s.addUser(email, username, password)
	tkn, _ := s.issue(u)
	return tkn
}

// IssueToken выпускает токен существующему пользователю с заданным временем выпуска
func (s *Server) IssueToken(email string, issuedAt time.Time) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	u, ok := s.users[email]
	if !ok {
		return "", fmt.Errorf("user %s not found", email)
	}
	return token.BuildJWTString(s.secret, strconv.Itoa(u.id), issuedAt, token.TokenExp)
}

// record запоминает запрос и отдает подмененный ответ, если он задан
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mux.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get(logger.RequestIDHeader),
			Body:          string(body),
		})
		st, stubbed := s.stubs[r.Method+" "+r.URL.Path]
		s.mux.Unlock()

		if stubbed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(st.status)
			io.WriteString(w, st.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type authResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

func (s *Server) addUser(email, username, password string) *user {
	u := &user{
		id:       len(s.users) + 1,
		email:    email,
		username: username,
		password: password,
	}
	s.users[email] = u
	return u
}

func (s *Server) issue(u *user) (string, error) {
	return token.BuildJWTString(s.secret, strconv.Itoa(u.id), s.now(), token.TokenExp)
}

func (s *Server) respondAuth(w http.ResponseWriter, u *user) {
	tkn, err := s.issue(u)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		ID:          u.id,
		Email:       u.email,
		Username:    u.username,
		AccessToken: tkn,
	})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Username == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "field required"}},
		})
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.users[req.Email]; ok {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	for _, u := range s.users {
		if u.username == req.Username {
			writeDetail(w, http.StatusBadRequest, "Username already taken")
			return
		}
	}

	s.respondAuth(w, s.addUser(req.Email, req.Username, req.Password))
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	u, ok := s.users[req.Email]
	if !ok || u.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.respondAuth(w, u)
}

// bearerUser - владелец bearer-токена, если токен действителен
func (s *Server) bearerUser(r *http.Request) (int, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return 0, false
	}
	sub, err := token.GetSubject(s.secret, raw)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return 0, false
	}
	return id, true
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}

func (s *Server) createURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetURL string `json:"target_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "bad request")
		return
	}

	target := req.TargetURL
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	if !validURL(target) {
		writeDetail(w, http.StatusBadRequest, "you have provided invalid url")
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	key := rand.Lower(5)
	for s.links[key] != nil {
		key = rand.Lower(5)
	}
	l := &link{
		Key:       key,
		SecretKey: key + "_" + rand.Lower(8),
		TargetURL: target,
		IsActive:  true,
	}
	if id, ok := s.bearerUser(r); ok {
		l.UserID = &id
	}
	s.links[key] = l
	s.order = append(s.order, key)

	writeJSON(w, http.StatusOK, l)
}

func (s *Server) userURLs(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bearerUser(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	out := []*link{}
	for _, key := range s.order {
		if l := s.links[key]; l.UserID != nil && *l.UserID == id {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mux.Lock()
	l, ok := s.links[key]
	if ok {
		l.Clicks++
	}
	s.mux.Unlock()

	if !ok || !l.IsActive {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("URL '%s' doesn't exist", r.URL.String()))
		return
	}
	http.Redirect(w, r, l.TargetURL, http.StatusTemporaryRedirect)
}
