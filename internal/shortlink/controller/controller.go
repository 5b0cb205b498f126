// Пакет controller. Экраны клиента, сессия и запросы к сервису.
//
// Controller хранит текущий экран и сессию, проверяет формы,
// вызывает шлюзы и сообщает пользователю результат через notify.Notifier.
// Шлюзы и хранилище сессии передаются через интерфейсы.
package controller

//go:generate mockgen -source=controller.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/iurnickita/shortlink/internal/shortlink/controller/config"
	"github.com/iurnickita/shortlink/internal/shortlink/gateway"
	"github.com/iurnickita/shortlink/internal/shortlink/model"
	"github.com/iurnickita/shortlink/internal/shortlink/notify"
	"github.com/iurnickita/shortlink/internal/shortlink/token"
	"github.com/iurnickita/shortlink/internal/shortlink/username"
	"github.com/iurnickita/shortlink/internal/shortlink/validation"
)

// Тексты уведомлений
const (
	msgSignedIn         = "Welcome back %s!"
	msgSignedUp         = "Account created successfully! Welcome to ShortLink."
	msgShortened        = "URL shortened successfully!"
	msgSignInFailed     = "Login failed"
	msgSignUpFailed     = "Failed to create account. Please try again."
	msgShortenFailed    = "Failed to shorten URL"
	msgGreeting         = "Welcome back, %s! Transform your long URLs into short links."
	msgGuest            = "You're using the shortener as a guest. Sign up to track your URLs and view analytics."
	msgUsernameNotValid = "Unable to derive a username from the full name or email"
)

// ErrBusy - отправка этой формы уже выполняется
var ErrBusy = errors.New("submission already in flight")

// AuthGateway - вход и регистрация на сервисе
type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (model.Session, error)
	SignUp(ctx context.Context, email, password, username string) (model.Session, error)
}

// ShorteningGateway - создание и получение коротких ссылок
type ShorteningGateway interface {
	CreateShortLink(ctx context.Context, targetURL, token string) (model.ShortenedLink, error)
	ListMyLinks(ctx context.Context, token string) ([]model.ShortenedLink, error)
}

// SessionStore - сохраненная между запусками сессия
type SessionStore interface {
	Save(ctx context.Context, sess model.Session) error
	Load(ctx context.Context) (model.Session, bool)
	Clear(ctx context.Context) error
}

// Stopper - отменяемое отложенное действие
type Stopper interface {
	Stop() bool
}

// Deferrer откладывает действие. По умолчанию time.AfterFunc
type Deferrer interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type timerDeferrer struct{}

func (timerDeferrer) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

type Option func(*Controller)

// WithDeferrer подменяет таймер перехода после регистрации
func WithDeferrer(d Deferrer) Option {
	return func(c *Controller) {
		c.deferrer = d
	}
}

// WithClock подменяет текущее время для проверки срока токена
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithShortenerBaseURL адрес, от которого строятся короткие ссылки
func WithShortenerBaseURL(u string) Option {
	return func(c *Controller) {
		c.baseURL = u
	}
}

type Controller struct {
	cfg        config.Config
	auth       AuthGateway
	shortening ShorteningGateway
	sessions   SessionStore
	notifier   notify.Notifier
	zaplog     *zap.Logger
	deferrer   Deferrer
	now        func() time.Time
	baseURL    string

	// по одной отправке на форму
	signInSem  *semaphore.Weighted
	signUpSem  *semaphore.Weighted
	shortenSem *semaphore.Weighted

	mux        sync.Mutex
	view       model.ViewState
	session    model.Session
	hasSession bool
	links      []model.ShortenedLink
	lastLink   *model.ShortenedLink
	formErrors model.FormErrors
	pending    Stopper
	closed     bool
}

func New(
	cfg config.Config,
	auth AuthGateway,
	shortening ShorteningGateway,
	sessions SessionStore,
	notifier notify.Notifier,
	zaplog *zap.Logger,
	opts ...Option,
) *Controller {
	c := &Controller{
		cfg:        cfg,
		auth:       auth,
		shortening: shortening,
		sessions:   sessions,
		notifier:   notifier,
		zaplog:     zaplog,
		deferrer:   timerDeferrer{},
		now:        time.Now,
		signInSem:  semaphore.NewWeighted(1),
		signUpSem:  semaphore.NewWeighted(1),
		shortenSem: semaphore.NewWeighted(1),
		view:       model.ViewHome,
		formErrors: model.FormErrors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start восстанавливает сохраненную сессию.
// Сессия с истекшим токеном отбрасывается и удаляется из хранилища
func (c *Controller) Start(ctx context.Context) {
	sess, ok := c.sessions.Load(ctx)
	if !ok {
		return
	}

	if token.Expired(sess.Token(), c.now()) {
		c.zaplog.Info("stored session expired", zap.String("username", sess.Username()))
		if err := c.sessions.Clear(ctx); err != nil {
			c.zaplog.Warn("session clear failed", zap.Error(err))
		}
		return
	}

	c.mux.Lock()
	c.session = sess
	c.hasSession = true
	c.mux.Unlock()

	c.zaplog.Debug("session restored", zap.String("username", sess.Username()))
	c.RefreshLinks(ctx)
}

// События экранов

func (c *Controller) RequestSignIn() error  { return c.fire(EventRequestSignIn) }
func (c *Controller) RequestSignUp() error  { return c.fire(EventRequestSignUp) }
func (c *Controller) SwitchToSignUp() error { return c.fire(EventSwitchToSignUp) }
func (c *Controller) SwitchToSignIn() error { return c.fire(EventSwitchToSignIn) }
func (c *Controller) Back() error           { return c.fire(EventBack) }

func (c *Controller) fire(event Event) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.fireLocked(event)
}

func (c *Controller) fireLocked(event Event) error {
	to, err := Next(c.view, event)
	if err != nil {
		return err
	}
	if to != c.view {
		c.formErrors = model.FormErrors{}
	}
	c.view = to
	return nil
}

// Logout завершает сессию. Доступно только с главного экрана
func (c *Controller) Logout(ctx context.Context) error {
	c.mux.Lock()
	if err := c.fireLocked(EventLogout); err != nil {
		c.mux.Unlock()
		return err
	}
	c.session = model.Session{}
	c.hasSession = false
	c.links = nil
	c.lastLink = nil
	c.mux.Unlock()

	if err := c.sessions.Clear(ctx); err != nil {
		c.zaplog.Warn("session clear failed", zap.Error(err))
	}
	return nil
}

// setFormErrors заменяет ошибки формы целиком
func (c *Controller) setFormErrors(errs model.FormErrors) error {
	c.mux.Lock()
	c.formErrors = errs.Clone()
	c.mux.Unlock()

	if errs.Valid() {
		return nil
	}
	return &validation.Error{Fields: errs.Clone()}
}

func (c *Controller) requireView(view model.ViewState) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.view != view {
		return ErrInvalidTransition
	}
	return nil
}

// SubmitSignIn проверяет форму входа и выполняет вход
func (c *Controller) SubmitSignIn(ctx context.Context, email, password string) error {
	if err := c.requireView(model.ViewSignIn); err != nil {
		return err
	}
	if err := c.setFormErrors(validation.ValidateSignIn(email, password)); err != nil {
		return err
	}

	if !c.signInSem.TryAcquire(1) {
		return ErrBusy
	}
	defer c.signInSem.Release(1)

	sess, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		c.zaplog.Info("sign in failed", zap.Error(err))
		c.notify(notify.LevelError, message(err, msgSignInFailed))
		return err
	}

	c.install(ctx, sess)
	c.notify(notify.LevelSuccess, fmt.Sprintf(msgSignedIn, sess.Username()))

	c.mux.Lock()
	if c.view == model.ViewSignIn {
		_ = c.fireLocked(EventSignedIn)
	}
	c.mux.Unlock()

	c.RefreshLinks(ctx)
	return nil
}

// SubmitSignUp проверяет форму регистрации и регистрирует пользователя.
// Переход на главный экран откладывается на NavigationDelay
func (c *Controller) SubmitSignUp(ctx context.Context, form validation.SignUpForm) error {
	if err := c.requireView(model.ViewSignUp); err != nil {
		return err
	}

	errs := validation.ValidateSignUp(form)
	name := username.Derive(form.FullName, form.Email)
	if errs.Valid() && name == "" {
		errs[validation.FieldUsername] = msgUsernameNotValid
	}
	if err := c.setFormErrors(errs); err != nil {
		return err
	}

	if !c.signUpSem.TryAcquire(1) {
		return ErrBusy
	}
	defer c.signUpSem.Release(1)

	sess, err := c.auth.SignUp(ctx, form.Email, form.Password, name)
	if err != nil {
		c.zaplog.Info("sign up failed", zap.Error(err))
		c.notify(notify.LevelError, message(err, msgSignUpFailed))
		return err
	}

	c.install(ctx, sess)
	c.notify(notify.LevelSuccess, msgSignedUp)
	c.scheduleHome()

	c.RefreshLinks(ctx)
	return nil
}

// scheduleHome переводит на главный экран после задержки,
// если пользователь еще на экране регистрации
func (c *Controller) scheduleHome() {
	delay := c.cfg.NavigationDelay

	c.mux.Lock()
	defer c.mux.Unlock()

	if c.closed {
		return
	}
	if delay <= 0 {
		_ = c.fireLocked(EventSignedUp)
		return
	}
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = c.deferrer.AfterFunc(delay, func() {
		c.mux.Lock()
		defer c.mux.Unlock()

		c.pending = nil
		if c.closed || c.view != model.ViewSignUp {
			return
		}
		_ = c.fireLocked(EventSignedUp)
	})
}

// install сохраняет сессию в памяти и в хранилище.
// Ошибка хранилища не мешает работе с сессией
func (c *Controller) install(ctx context.Context, sess model.Session) {
	c.mux.Lock()
	c.session = sess
	c.hasSession = true
	c.mux.Unlock()

	if err := c.sessions.Save(ctx, sess); err != nil {
		c.zaplog.Warn("session save failed", zap.Error(err))
	}
}

// Shorten создает короткую ссылку. Если есть сессия, ссылка принадлежит
// пользователю и список его ссылок обновляется
func (c *Controller) Shorten(ctx context.Context, targetURL string) (model.ShortenedLink, error) {
	if !c.shortenSem.TryAcquire(1) {
		return model.ShortenedLink{}, ErrBusy
	}
	defer c.shortenSem.Release(1)

	sess, authed := c.Session()
	var tkn string
	if authed {
		tkn = sess.Token()
	}

	link, err := c.shortening.CreateShortLink(ctx, targetURL, tkn)
	if err != nil {
		c.zaplog.Info("shortening failed", zap.String("target_url", targetURL), zap.Error(err))
		c.notify(notify.LevelError, message(err, msgShortenFailed))
		return model.ShortenedLink{}, err
	}

	if authed {
		owner := sess.UserID()
		link.OwnerID = &owner
	}

	c.mux.Lock()
	c.lastLink = &link
	c.mux.Unlock()

	c.notify(notify.LevelSuccess, msgShortened)

	if tkn != "" {
		c.RefreshLinks(ctx)
	}
	return link, nil
}

// RefreshLinks перечитывает ссылки пользователя.
// Ошибка только логируется, список становится пустым
func (c *Controller) RefreshLinks(ctx context.Context) []model.ShortenedLink {
	sess, ok := c.Session()
	if !ok {
		c.mux.Lock()
		c.links = nil
		c.mux.Unlock()
		return nil
	}

	links, err := c.shortening.ListMyLinks(ctx, sess.Token())
	if err != nil {
		c.zaplog.Warn("list links failed", zap.Error(err))
		links = []model.ShortenedLink{}
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	// за время запроса сессия могла смениться
	if !c.hasSession || c.session.Token() != sess.Token() {
		return nil
	}
	c.links = links
	return append([]model.ShortenedLink(nil), links...)
}

func (c *Controller) notify(level notify.Level, text string) {
	c.notifier.Notify(notify.Notification{Level: level, Text: text})
}

// message - текст уведомления об ошибке шлюза
func message(err error, fallback string) string {
	var authErr *gateway.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var shErr *gateway.ShorteningError
	if errors.As(err, &shErr) && shErr.Message != "" {
		return shErr.Message
	}
	return fallback
}

// ClearFieldError убирает ошибку одного поля без повторной проверки формы
func (c *Controller) ClearFieldError(field string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	delete(c.formErrors, field)
}

func (c *Controller) View() model.ViewState {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.view
}

func (c *Controller) Session() (model.Session, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.session, c.hasSession
}

func (c *Controller) IsAuthenticated() bool {
	_, ok := c.Session()
	return ok
}

func (c *Controller) IsGuest() bool {
	return !c.IsAuthenticated()
}

func (c *Controller) Links() []model.ShortenedLink {
	c.mux.Lock()
	defer c.mux.Unlock()

	return append([]model.ShortenedLink(nil), c.links...)
}

func (c *Controller) LastLink() (model.ShortenedLink, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.lastLink == nil {
		return model.ShortenedLink{}, false
	}
	return *c.lastLink, true
}

func (c *Controller) FormErrors() model.FormErrors {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.formErrors.Clone()
}

// Greeting - приветствие пользователя или подсказка гостю
func (c *Controller) Greeting() string {
	sess, ok := c.Session()
	if !ok {
		return msgGuest
	}
	return fmt.Sprintf(msgGreeting, sess.Username())
}

// ShortURL полная короткая ссылка
func (c *Controller) ShortURL(link model.ShortenedLink) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + link.ShortKey
}

// PasswordStrength оценка пароля и ее название. На прием формы не влияет
func (c *Controller) PasswordStrength(password string) (int, string) {
	n := validation.PasswordStrength(password)
	return n, validation.StrengthLabel(n)
}

// Close отменяет отложенный переход
func (c *Controller) Close() {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.closed = true
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
