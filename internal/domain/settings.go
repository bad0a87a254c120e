package domain

// Appearance is the colour scheme views should pick resources for.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// UserSettings holds the player's profile and display preferences.
type UserSettings struct {
	FirstName              string `json:"firstName"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
	IsDarkMode             bool   `json:"isDarkMode"`
}

// Appearance returns the colour scheme selected by the settings.
func (s UserSettings) Appearance() Appearance {
	if s.IsDarkMode {
		return AppearanceDark
	}
	return AppearanceLight
}
