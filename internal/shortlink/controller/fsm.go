package controller

import (
	"errors"
	"fmt"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
)

// Event - событие, меняющее текущий экран
type Event string

const (
	EventRequestSignIn  Event = "request_signin"
	EventRequestSignUp  Event = "request_signup"
	EventSwitchToSignUp Event = "switch_to_signup"
	EventSwitchToSignIn Event = "switch_to_signin"
	EventBack           Event = "back"
	EventSignedIn       Event = "signed_in"
	EventSignedUp       Event = "signed_up"
	EventLogout         Event = "logout"
)

// ErrInvalidTransition - событие недопустимо на текущем экране
var ErrInvalidTransition = errors.New("invalid transition")

type transition struct {
	from  model.ViewState
	event Event
}

var transitions = map[transition]model.ViewState{
	{model.ViewHome, EventRequestSignIn}:    model.ViewSignIn,
	{model.ViewHome, EventRequestSignUp}:    model.ViewSignUp,
	{model.ViewSignIn, EventSwitchToSignUp}: model.ViewSignUp,
	{model.ViewSignUp, EventSwitchToSignIn}: model.ViewSignIn,
	{model.ViewSignIn, EventBack}:           model.ViewHome,
	{model.ViewSignUp, EventBack}:           model.ViewHome,
	{model.ViewSignIn, EventSignedIn}:       model.ViewHome,
	{model.ViewSignUp, EventSignedUp}:       model.ViewHome,
	{model.ViewHome, EventLogout}:           model.ViewHome,
}

// Next возвращает экран после события
func Next(view model.ViewState, event Event) (model.ViewState, error) {
	to, ok := transitions[transition{view, event}]
	if !ok {
		return view, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, view)
	}
	return to, nil
}
