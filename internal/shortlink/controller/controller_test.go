package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortlink/controller"
	"github.com/iurnickita/shortlink/internal/shortlink/controller/config"
	"github.com/iurnickita/shortlink/internal/shortlink/controller/mocks"
	"github.com/iurnickita/shortlink/internal/shortlink/gateway"
	"github.com/iurnickita/shortlink/internal/shortlink/model"
	"github.com/iurnickita/shortlink/internal/shortlink/notify"
	"github.com/iurnickita/shortlink/internal/shortlink/token"
	"github.com/iurnickita/shortlink/internal/shortlink/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	auth       *mocks.MockAuthGateway
	shortening *mocks.MockShorteningGateway
	sessions   *mocks.MockSessionStore
	deferrer   *mocks.MockDeferrer
	notes      *notify.Recorder
	ctl        *controller.Controller
}

func newFixture(t *testing.T, opts ...controller.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		auth:       mocks.NewMockAuthGateway(ctrl),
		shortening: mocks.NewMockShorteningGateway(ctrl),
		sessions:   mocks.NewMockSessionStore(ctrl),
		deferrer:   mocks.NewMockDeferrer(ctrl),
		notes:      &notify.Recorder{},
	}
	opts = append([]controller.Option{
		controller.WithDeferrer(f.deferrer),
		controller.WithShortenerBaseURL("http://sho.rt/"),
	}, opts...)
	f.ctl = controller.New(
		config.Config{NavigationDelay: time.Second},
		f.auth, f.shortening, f.sessions, f.notes, zap.NewNop(), opts...,
	)
	t.Cleanup(f.ctl.Close)
	return f
}

func testSession(t *testing.T, tkn string) model.Session {
	t.Helper()
	s, err := model.NewSession(model.User{ID: "7", Email: "jane@example.com", Username: "jane_doe"}, tkn)
	require.NoError(t, err)
	return s
}

func testLink(t *testing.T, target, key string) model.ShortenedLink {
	t.Helper()
	l, err := model.NewShortenedLink(target, key, nil)
	require.NoError(t, err)
	return l
}

func validSignUp() validation.SignUpForm {
	return validation.SignUpForm{
		FullName:        "Jane Doe!!",
		Email:           "jane@example.com",
		Password:        "Secret12",
		ConfirmPassword: "Secret12",
		AcceptTerms:     true,
	}
}

func TestController_BackReturnsHome(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctl.RequestSignIn())
	assert.Equal(t, model.ViewSignIn, f.ctl.View())
	require.NoError(t, f.ctl.Back())
	assert.Equal(t, model.ViewHome, f.ctl.View())
	assert.True(t, f.ctl.IsGuest())

	require.NoError(t, f.ctl.RequestSignUp())
	require.NoError(t, f.ctl.SwitchToSignIn())
	require.NoError(t, f.ctl.SwitchToSignUp())
	require.NoError(t, f.ctl.Back())
	assert.Equal(t, model.ViewHome, f.ctl.View())

	assert.ErrorIs(t, f.ctl.Back(), controller.ErrInvalidTransition)
	assert.Empty(t, f.notes.All())
}

func TestController_Start(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	secret := []byte("secret")

	fresh, err := token.BuildJWTString(secret, "7", now.Add(-time.Hour), token.TokenExp)
	require.NoError(t, err)
	stale, err := token.BuildJWTString(secret, "7", now.Add(-4*time.Hour), token.TokenExp)
	require.NoError(t, err)

	tests := []struct {
		name     string
		stored   string
		present  bool
		wantAuth bool
	}{
		{name: "nothing stored", present: false, wantAuth: false},
		{name: "opaque token", stored: "opaque", present: true, wantAuth: true},
		{name: "fresh jwt", stored: fresh, present: true, wantAuth: true},
		{name: "expired jwt", stored: stale, present: true, wantAuth: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, controller.WithClock(func() time.Time { return now }))
			ctx := context.Background()

			if !test.present {
				f.sessions.EXPECT().Load(gomock.Any()).Return(model.Session{}, false)
			} else {
				sess := testSession(t, test.stored)
				f.sessions.EXPECT().Load(gomock.Any()).Return(sess, true)
				if test.wantAuth {
					f.shortening.EXPECT().ListMyLinks(gomock.Any(), test.stored).
						Return([]model.ShortenedLink{testLink(t, "https://example.com", "abcde")}, nil)
				} else {
					f.sessions.EXPECT().Clear(gomock.Any()).Return(nil)
				}
			}

			f.ctl.Start(ctx)

			assert.Equal(t, test.wantAuth, f.ctl.IsAuthenticated())
			assert.Equal(t, model.ViewHome, f.ctl.View())
			if test.wantAuth {
				assert.Len(t, f.ctl.Links(), 1)
				assert.Equal(t, "Welcome back, jane_doe! Transform your long URLs into short links.", f.ctl.Greeting())
			} else {
				assert.Contains(t, f.ctl.Greeting(), "as a guest")
			}
		})
	}
}

func TestController_SubmitSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("validation blocks the request", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignIn())

		err := f.ctl.SubmitSignIn(ctx, "not-an-email", "123")

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{validation.FieldEmail, validation.FieldPassword}, vErr.Fields.Fields())
		assert.Equal(t, vErr.Fields, f.ctl.FormErrors())
		assert.Empty(t, f.notes.All())

		f.ctl.ClearFieldError(validation.FieldEmail)
		assert.Equal(t, []string{validation.FieldPassword}, f.ctl.FormErrors().Fields())
	})

	t.Run("only from sign in view", func(t *testing.T) {
		f := newFixture(t)
		err := f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1")
		assert.ErrorIs(t, err, controller.ErrInvalidTransition)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		require.NoError(t, f.ctl.RequestSignIn())

		gomock.InOrder(
			f.auth.EXPECT().SignIn(gomock.Any(), "jane@example.com", "secret1").Return(sess, nil),
			f.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil),
			f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return(nil, nil),
		)

		require.NoError(t, f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1"))

		assert.Equal(t, model.ViewHome, f.ctl.View())
		got, ok := f.ctl.Session()
		require.True(t, ok)
		assert.Equal(t, sess, got)
		last, _ := f.notes.Last()
		assert.Equal(t, notify.Notification{Level: notify.LevelSuccess, Text: "Welcome back jane_doe!"}, last)
	})

	t.Run("store failure is not fatal", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		require.NoError(t, f.ctl.RequestSignIn())

		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).Return(sess, nil)
		f.sessions.EXPECT().Save(gomock.Any(), sess).Return(errors.New("disk full"))
		f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return(nil, nil)

		require.NoError(t, f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1"))
		assert.True(t, f.ctl.IsAuthenticated())
	})

	t.Run("remote failure", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignIn())

		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Session{}, &gateway.AuthError{Kind: gateway.KindRemote, Message: "Invalid email or password"})

		err := f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1")
		require.Error(t, err)

		assert.Equal(t, model.ViewSignIn, f.ctl.View())
		assert.True(t, f.ctl.IsGuest())
		assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Text: "Invalid email or password"}}, f.notes.All())
	})

	t.Run("untyped failure uses fallback", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignIn())

		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Session{}, errors.New("boom"))

		require.Error(t, f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1"))
		last, _ := f.notes.Last()
		assert.Equal(t, "Login failed", last.Text)
	})
}

func TestController_SubmitSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("deferred navigation", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		require.NoError(t, f.ctl.RequestSignUp())

		var navigate func()
		stopper := mocks.NewMockStopper(gomock.NewController(t))
		f.auth.EXPECT().SignUp(gomock.Any(), "jane@example.com", "Secret12", "jane_doe").Return(sess, nil)
		f.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil)
		f.deferrer.EXPECT().AfterFunc(time.Second, gomock.Any()).
			DoAndReturn(func(_ time.Duration, fn func()) controller.Stopper {
				navigate = fn
				return stopper
			})
		f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return(nil, nil)

		require.NoError(t, f.ctl.SubmitSignUp(ctx, validSignUp()))

		// уведомление видно до перехода
		assert.Equal(t, model.ViewSignUp, f.ctl.View())
		last, _ := f.notes.Last()
		assert.Equal(t, "Account created successfully! Welcome to ShortLink.", last.Text)

		require.NotNil(t, navigate)
		navigate()
		assert.Equal(t, model.ViewHome, f.ctl.View())
		assert.True(t, f.ctl.IsAuthenticated())
	})

	t.Run("navigation after leaving the view", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		require.NoError(t, f.ctl.RequestSignUp())

		var navigate func()
		stopper := mocks.NewMockStopper(gomock.NewController(t))
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(sess, nil)
		f.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		f.deferrer.EXPECT().AfterFunc(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ time.Duration, fn func()) controller.Stopper {
				navigate = fn
				return stopper
			})
		f.shortening.EXPECT().ListMyLinks(gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, f.ctl.SubmitSignUp(ctx, validSignUp()))
		require.NoError(t, f.ctl.SwitchToSignIn())

		navigate()
		assert.Equal(t, model.ViewSignIn, f.ctl.View())
	})

	t.Run("close stops pending navigation", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		require.NoError(t, f.ctl.RequestSignUp())

		stopper := mocks.NewMockStopper(gomock.NewController(t))
		stopper.EXPECT().Stop().Return(true)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(sess, nil)
		f.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		f.deferrer.EXPECT().AfterFunc(gomock.Any(), gomock.Any()).Return(stopper)
		f.shortening.EXPECT().ListMyLinks(gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, f.ctl.SubmitSignUp(ctx, validSignUp()))
		f.ctl.Close()
	})

	t.Run("remote detail wins", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignUp())

		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Session{}, &gateway.AuthError{Kind: gateway.KindRemote, Message: "Email taken"})

		require.Error(t, f.ctl.SubmitSignUp(ctx, validSignUp()))
		assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Text: "Email taken"}}, f.notes.All())
		assert.Equal(t, model.ViewSignUp, f.ctl.View())
	})

	t.Run("empty derived username", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignUp())

		form := validSignUp()
		form.FullName = "!!"
		form.Email = "+++@example.com"

		err := f.ctl.SubmitSignUp(ctx, form)

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, model.FormErrors{
			validation.FieldUsername: "Unable to derive a username from the full name or email",
		}, vErr.Fields)
		assert.Empty(t, f.notes.All())
	})

	t.Run("invalid form", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.RequestSignUp())

		form := validSignUp()
		form.ConfirmPassword = "other"
		form.AcceptTerms = false

		err := f.ctl.SubmitSignUp(ctx, form)

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{validation.FieldConfirmPassword, validation.FieldTerms}, vErr.Fields.Fields())
	})
}

func TestController_SubmitSignUpWithoutDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthGateway(ctrl)
	shortening := mocks.NewMockShorteningGateway(ctrl)
	sessions := mocks.NewMockSessionStore(ctrl)
	sess := testSession(t, "tkn")

	auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(sess, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	shortening.EXPECT().ListMyLinks(gomock.Any(), gomock.Any()).Return(nil, nil)

	ctl := controller.New(config.Config{}, auth, shortening, sessions, &notify.Recorder{}, zap.NewNop())
	defer ctl.Close()

	require.NoError(t, ctl.RequestSignUp())
	require.NoError(t, ctl.SubmitSignUp(context.Background(), validSignUp()))
	assert.Equal(t, model.ViewHome, ctl.View())
}

func TestController_Shorten(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous does not refresh", func(t *testing.T) {
		f := newFixture(t)
		link := testLink(t, "https://example.com/a/b", "abcde")

		f.shortening.EXPECT().CreateShortLink(gomock.Any(), "https://example.com/a/b", "").Return(link, nil)

		got, err := f.ctl.Shorten(ctx, "https://example.com/a/b")
		require.NoError(t, err)
		assert.Nil(t, got.OwnerID)
		assert.Equal(t, "http://sho.rt/abcde", f.ctl.ShortURL(got))

		last, ok := f.ctl.LastLink()
		require.True(t, ok)
		assert.Equal(t, link, last)
		assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Text: "URL shortened successfully!"}}, f.notes.All())
	})

	t.Run("authenticated refreshes once", func(t *testing.T) {
		f := newFixture(t)
		sess := testSession(t, "tkn")
		link := testLink(t, "https://example.com/a/b", "abcde")

		f.sessions.EXPECT().Load(gomock.Any()).Return(sess, true)
		gomock.InOrder(
			f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return(nil, nil),
			f.shortening.EXPECT().CreateShortLink(gomock.Any(), "https://example.com/a/b", "tkn").Return(link, nil),
			f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return([]model.ShortenedLink{link}, nil).Times(1),
		)

		f.ctl.Start(ctx)
		got, err := f.ctl.Shorten(ctx, "https://example.com/a/b")
		require.NoError(t, err)

		require.NotNil(t, got.OwnerID)
		assert.Equal(t, model.UserID("7"), *got.OwnerID)
		assert.Equal(t, []model.ShortenedLink{link}, f.ctl.Links())
	})

	t.Run("failure is notified", func(t *testing.T) {
		f := newFixture(t)

		f.shortening.EXPECT().CreateShortLink(gomock.Any(), "", "").
			Return(model.ShortenedLink{}, &gateway.ShorteningError{Kind: gateway.KindLocal, Message: "Please enter a URL to shorten"})

		_, err := f.ctl.Shorten(ctx, "")
		require.Error(t, err)

		_, ok := f.ctl.LastLink()
		assert.False(t, ok)
		assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Text: "Please enter a URL to shorten"}}, f.notes.All())
	})
}

func TestController_RefreshLinksDegrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := testSession(t, "tkn")

	f.sessions.EXPECT().Load(gomock.Any()).Return(sess, true)
	f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").
		Return(nil, &gateway.ListingError{Kind: gateway.KindConnectivity, Message: "Failed to fetch links"})

	f.ctl.Start(ctx)

	assert.True(t, f.ctl.IsAuthenticated())
	assert.Empty(t, f.ctl.Links())
	assert.Empty(t, f.notes.All())
}

func TestController_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := testSession(t, "tkn")

	f.sessions.EXPECT().Load(gomock.Any()).Return(sess, true)
	f.shortening.EXPECT().ListMyLinks(gomock.Any(), "tkn").Return(nil, nil)
	f.ctl.Start(ctx)

	require.NoError(t, f.ctl.RequestSignIn())
	assert.ErrorIs(t, f.ctl.Logout(ctx), controller.ErrInvalidTransition)
	assert.True(t, f.ctl.IsAuthenticated())

	require.NoError(t, f.ctl.Back())
	f.sessions.EXPECT().Clear(gomock.Any()).Return(nil)
	require.NoError(t, f.ctl.Logout(ctx))

	assert.True(t, f.ctl.IsGuest())
	assert.Equal(t, model.ViewHome, f.ctl.View())
	assert.Empty(t, f.ctl.Links())
}

func TestController_Busy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.RequestSignIn())

	entered := make(chan struct{})
	release := make(chan struct{})
	f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (model.Session, error) {
			close(entered)
			<-release
			return model.Session{}, errors.New("boom")
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1")
	}()

	<-entered
	assert.ErrorIs(t, f.ctl.SubmitSignIn(ctx, "jane@example.com", "secret1"), controller.ErrBusy)
	close(release)
	wg.Wait()
}

func TestController_PasswordStrength(t *testing.T) {
	f := newFixture(t)

	n, label := f.ctl.PasswordStrength("abc")
	assert.Equal(t, 1, n)
	assert.Equal(t, "Very Weak", label)

	n, label = f.ctl.PasswordStrength("Abcdef12!")
	assert.Equal(t, 5, n)
	assert.Equal(t, "Strong", label)
}
