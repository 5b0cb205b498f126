package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    model.ViewState
		event   Event
		want    model.ViewState
		wantErr bool
	}{
		{name: "home to sign in", from: model.ViewHome, event: EventRequestSignIn, want: model.ViewSignIn},
		{name: "home to sign up", from: model.ViewHome, event: EventRequestSignUp, want: model.ViewSignUp},
		{name: "sign in to sign up", from: model.ViewSignIn, event: EventSwitchToSignUp, want: model.ViewSignUp},
		{name: "sign up to sign in", from: model.ViewSignUp, event: EventSwitchToSignIn, want: model.ViewSignIn},
		{name: "back from sign in", from: model.ViewSignIn, event: EventBack, want: model.ViewHome},
		{name: "back from sign up", from: model.ViewSignUp, event: EventBack, want: model.ViewHome},
		{name: "signed in", from: model.ViewSignIn, event: EventSignedIn, want: model.ViewHome},
		{name: "signed up", from: model.ViewSignUp, event: EventSignedUp, want: model.ViewHome},
		{name: "logout", from: model.ViewHome, event: EventLogout, want: model.ViewHome},
		{name: "back from home", from: model.ViewHome, event: EventBack, want: model.ViewHome, wantErr: true},
		{name: "logout from sign in", from: model.ViewSignIn, event: EventLogout, want: model.ViewSignIn, wantErr: true},
		{name: "sign in twice", from: model.ViewSignIn, event: EventRequestSignIn, want: model.ViewSignIn, wantErr: true},
		{name: "switch from home", from: model.ViewHome, event: EventSwitchToSignUp, want: model.ViewHome, wantErr: true},
		{name: "signed up on sign in", from: model.ViewSignIn, event: EventSignedUp, want: model.ViewSignIn, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Next(test.from, test.event)
			if test.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, test.want, got)
		})
	}
}
