package views

import (
	"context"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// Settings edits appearance and profile.
type Settings struct {
	loc   *bundle.Localizer
	store *settings.Store
}

// SettingsSnapshot is the rendered state of the settings sheet.
type SettingsSnapshot struct {
	AppearanceSection string            `json:"appearanceSection"`
	DarkModeLabel     string            `json:"darkModeLabel"`
	IsDarkMode        bool              `json:"isDarkMode"`
	Appearance        domain.Appearance `json:"appearance"`
	ProfileSection    string            `json:"profileSection"`
	NamePlaceholder   string            `json:"namePlaceholder"`
	FirstName         string            `json:"firstName"`
	DoneLabel         string            `json:"doneLabel"`
}

// NewSettings builds the settings sheet from the stored settings.
func NewSettings(deps Dependencies) (*Settings, error) {
	if err := deps.requireSettings(IDSettings); err != nil {
		return nil, err
	}
	return &Settings{loc: deps.localizer(), store: deps.Settings}, nil
}

// Identifier and Title implement View.
func (v *Settings) Identifier() string { return IDSettings }
func (v *Settings) Title() string      { return v.loc.String("settings.title") }

// SetDarkMode toggles the appearance.
func (v *Settings) SetDarkMode(ctx context.Context, dark bool) error {
	_, err := v.store.SetDarkMode(ctx, dark)
	return err
}

// SetFirstName renames the player.
func (v *Settings) SetFirstName(ctx context.Context, name string) error {
	_, err := v.store.SetFirstName(ctx, name)
	return err
}

// Snapshot returns a SettingsSnapshot.
func (v *Settings) Snapshot() any {
	s := v.store.Get()
	return SettingsSnapshot{
		AppearanceSection: v.loc.String("settings.section.appearance"),
		DarkModeLabel:     v.loc.String("settings.dark_mode"),
		IsDarkMode:        s.IsDarkMode,
		Appearance:        s.Appearance(),
		ProfileSection:    v.loc.String("settings.section.profile"),
		NamePlaceholder:   v.loc.String("settings.name_placeholder"),
		FirstName:         s.FirstName,
		DoneLabel:         v.loc.String("settings.done"),
	}
}
