package views

import (
	"context"
	"strings"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// Onboarding asks the player for their first name.
type Onboarding struct {
	loc      *bundle.Localizer
	settings *settings.Store
	// FirstName is the text field value.
	FirstName string
}

// OnboardingSnapshot is the rendered state of the onboarding sheet.
type OnboardingSnapshot struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	NamePlaceholder string `json:"namePlaceholder"`
	FirstName       string `json:"firstName"`
	SubmitLabel     string `json:"submitLabel"`
	CanSubmit       bool   `json:"canSubmit"`
	Completed       bool   `json:"completed"`
}

// NewOnboarding builds the first-run name prompt.
func NewOnboarding(deps Dependencies) (*Onboarding, error) {
	if err := deps.requireSettings(IDOnboarding); err != nil {
		return nil, err
	}
	return &Onboarding{loc: deps.localizer(), settings: deps.Settings}, nil
}

// Identifier and Title implement View.
func (v *Onboarding) Identifier() string { return IDOnboarding }
func (v *Onboarding) Title() string      { return v.loc.String("onboarding.title") }

// CanSubmit reports whether the entered name is usable.
func (v *Onboarding) CanSubmit() bool {
	return strings.TrimSpace(v.FirstName) != ""
}

// Submit stores the name and marks onboarding complete.
func (v *Onboarding) Submit(ctx context.Context) error {
	_, err := v.settings.CompleteOnboarding(ctx, v.FirstName)
	return err
}

// Snapshot returns a OnboardingSnapshot.
func (v *Onboarding) Snapshot() any {
	return OnboardingSnapshot{
		Headline:        v.loc.String("onboarding.headline"),
		Subheadline:     v.loc.String("onboarding.subheadline"),
		NamePlaceholder: v.loc.String("onboarding.name_placeholder"),
		FirstName:       v.FirstName,
		SubmitLabel:     v.loc.String("onboarding.submit"),
		CanSubmit:       v.CanSubmit(),
		Completed:       v.settings.Get().HasCompletedOnboarding,
	}
}
