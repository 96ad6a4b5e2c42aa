package session

// AuthState is the coarse session state a screen is gated on.
type AuthState int

const (
	StateLoading AuthState = iota
	StateAuthenticated
	StateUnauthenticated
)

// Decision is what a guard tells the screen to do.
type Decision int

const (
	DecisionShowPlaceholder Decision = iota
	DecisionRender
	DecisionRedirectToLogin
	DecisionRedirectToFiles
)

// Guard decides whether a screen renders for a given session state.
type Guard interface {
	Decide(state AuthState) Decision
}

// RequireAuth protects screens that need a signed-in user.
type RequireAuth struct{}

func (RequireAuth) Decide(state AuthState) Decision {
	switch state {
	case StateAuthenticated:
		return DecisionRender
	case StateUnauthenticated:
		return DecisionRedirectToLogin
	default:
		return DecisionShowPlaceholder
	}
}

// RequireAnonymous protects screens that only make sense signed out, like
// the login form.
type RequireAnonymous struct{}

func (RequireAnonymous) Decide(state AuthState) Decision {
	switch state {
	case StateAuthenticated:
		return DecisionRedirectToFiles
	case StateUnauthenticated:
		return DecisionRender
	default:
		return DecisionShowPlaceholder
	}
}
