package views

import "github.com/nfrund/golfjourneys/internal/bundle"

// Welcome is the first screen a new player sees.
type Welcome struct {
	loc *bundle.Localizer
	// ShowNewJourney is set once the player starts their journey.
	ShowNewJourney bool
}

// WelcomeSnapshot is the rendered state of the welcome screen.
type WelcomeSnapshot struct {
	Headline       string `json:"headline"`
	Message        string `json:"message"`
	StartLabel     string `json:"startLabel"`
	ShowNewJourney bool   `json:"showNewJourney"`
}

// NewWelcome builds the welcome screen. It needs no services.
func NewWelcome(deps Dependencies) (*Welcome, error) {
	return &Welcome{loc: deps.localizer()}, nil
}

// Identifier and Title implement View.
func (v *Welcome) Identifier() string { return IDWelcome }
func (v *Welcome) Title() string      { return v.loc.String("welcome.title") }

// Start begins the journey.
func (v *Welcome) Start() { v.ShowNewJourney = true }

// Snapshot returns a WelcomeSnapshot.
func (v *Welcome) Snapshot() any {
	return WelcomeSnapshot{
		Headline:       v.loc.String("welcome.headline"),
		Message:        v.loc.String("welcome.message"),
		StartLabel:     v.loc.String("welcome.start"),
		ShowNewJourney: v.ShowNewJourney,
	}
}
