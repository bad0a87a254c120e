package views

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/settings"
)

var testNow = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func newDeps(t *testing.T, locale string) Dependencies {
	t.Helper()
	clock := func() time.Time { return testNow }
	return Dependencies{
		Localizer: bundle.Default().Localizer(locale),
		Goals:     goals.NewBook(goals.WithClock(clock)),
		Settings:  settings.NewStore(domain.UserSettings{FirstName: "Ada"}, nil),
		Clock:     clock,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}
}

// memLocalizer builds a minimal bundle without quotes or images.
func memLocalizer(t *testing.T) *bundle.Localizer {
	t.Helper()
	memFs := afero.NewMemMapFs()
	manifest := "identifier: test\nname: Test\nversion: '1'\ndefault_locale: en\nlocales: [en]\n"
	require.NoError(t, afero.WriteFile(memFs, bundle.ManifestFile, []byte(manifest), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "strings/en.yaml", []byte("goals.title: Goals\n"), 0o644))
	b, err := bundle.New(memFs, bundle.SourceMemory)
	require.NoError(t, err)
	return b.Localizer("en")
}

func addGoal(t *testing.T, deps Dependencies, title string, days int, hard bool) domain.Goal {
	t.Helper()
	g := domain.NewGoal(title, "", testNow.Add(time.Duration(days)*24*time.Hour), hard)
	require.NoError(t, deps.Goals.Add(context.Background(), g))
	return g
}

func TestMissingDependencies(t *testing.T) {
	empty := Dependencies{}

	constructors := map[string]func(Dependencies) error{
		IDOnboarding:       func(d Dependencies) error { _, err := NewOnboarding(d); return err },
		IDGoalsList:        func(d Dependencies) error { _, err := NewGoalsList(d); return err },
		IDGoalRow:          func(d Dependencies) error { _, err := NewGoalRow(d); return err },
		IDAddGoal:          func(d Dependencies) error { _, err := NewAddGoal(d); return err },
		IDEditGoal:         func(d Dependencies) error { _, err := NewEditGoal(d); return err },
		IDSettings:         func(d Dependencies) error { _, err := NewSettings(d); return err },
		IDGolfBallProgress: func(d Dependencies) error { _, err := NewGolfBallProgress(d); return err },
	}
	for id, construct := range constructors {
		t.Run(id, func(t *testing.T) {
			assert.ErrorIs(t, construct(empty), ErrMissingDependency)
		})
	}

	t.Run("welcome needs nothing", func(t *testing.T) {
		v, err := NewWelcome(empty)
		require.NoError(t, err)
		assert.Equal(t, "Golf Journey", v.Title())
	})

	t.Run("goal views need an id", func(t *testing.T) {
		deps := newDeps(t, "en")
		_, err := NewGoalRow(deps)
		assert.ErrorIs(t, err, ErrMissingDependency)

		deps.GoalID = uuid.New()
		_, err = NewEditGoal(deps)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWelcome(t *testing.T) {
	v, err := NewWelcome(newDeps(t, "en"))
	require.NoError(t, err)

	snap := v.Snapshot().(WelcomeSnapshot)
	assert.Equal(t, "Welcome to Golf Journey", snap.Headline)
	assert.Equal(t, "Start Your Journey", snap.StartLabel)
	assert.False(t, snap.ShowNewJourney)

	v.Start()
	assert.True(t, v.Snapshot().(WelcomeSnapshot).ShowNewJourney)
}

func TestOnboarding(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")
	deps.Settings = settings.NewStore(domain.UserSettings{}, nil)

	v, err := NewOnboarding(deps)
	require.NoError(t, err)
	assert.False(t, v.CanSubmit())

	v.FirstName = "   "
	assert.False(t, v.CanSubmit())
	assert.ErrorIs(t, v.Submit(ctx), domain.ErrInvalidInput)

	v.FirstName = "Rory"
	assert.True(t, v.CanSubmit())
	require.NoError(t, v.Submit(ctx))

	snap := v.Snapshot().(OnboardingSnapshot)
	assert.True(t, snap.Completed)
	assert.Equal(t, "Rory", deps.Settings.Get().FirstName)
}

func TestGoalsList_Empty(t *testing.T) {
	deps := newDeps(t, "en")
	v, err := NewGoalsList(deps)
	require.NoError(t, err)

	snap := v.Snapshot().(GoalsListSnapshot)
	assert.Equal(t, "My Golf Goals", snap.Title)
	assert.Equal(t, "Welcome, Ada!", snap.Greeting)
	assert.Equal(t, "256142", snap.BrandColor)
	require.NotNil(t, snap.Empty)
	assert.Equal(t, "No Goals Yet", snap.Empty.Title)
	assert.Equal(t, "images/bunker-icon.svg", snap.Empty.Icon)
	assert.Nil(t, snap.Progress)
	assert.Empty(t, snap.Sections)
	require.NotNil(t, snap.Quote)
	assert.NotEmpty(t, snap.Quote.Text)
}

func TestGoalsList_Sections(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")

	addGoal(t, deps, "Season goal", 120, false)
	soon := addGoal(t, deps, "Lesson", 3, false)
	addGoal(t, deps, "Late", -2, false)

	v, err := NewGoalsList(deps)
	require.NoError(t, err)

	snap := v.Snapshot().(GoalsListSnapshot)
	assert.Nil(t, snap.Empty)
	assert.Equal(t, "Upcoming Golf Goals", snap.Upcoming)
	require.Len(t, snap.Sections, 2)

	urgent := snap.Sections[0]
	assert.True(t, urgent.Urgent)
	assert.Equal(t, "Due Soon", urgent.Title)
	require.Len(t, urgent.Rows, 2)
	assert.Equal(t, "Late", urgent.Rows[0].Title)
	assert.Equal(t, "Overdue by 2 days", urgent.Rows[0].DueText)
	assert.True(t, urgent.Rows[0].IsOverdue)
	assert.Equal(t, "Due in 3 days", urgent.Rows[1].DueText)

	all := snap.Sections[1]
	assert.Equal(t, "All Goals", all.Title)
	require.Len(t, all.Rows, 1)
	assert.Equal(t, "Season goal", all.Rows[0].Title)

	require.NotNil(t, snap.Progress)
	assert.Equal(t, "0 of 3 goals completed", snap.Progress.Caption)

	t.Run("toggling moves a goal out of the urgent section", func(t *testing.T) {
		require.NoError(t, v.Toggle(ctx, soon.ID))

		snap := v.Snapshot().(GoalsListSnapshot)
		assert.Len(t, snap.Sections[0].Rows, 1)
		assert.Len(t, snap.Sections[1].Rows, 2)
		assert.Equal(t, "1 of 3 goals completed", snap.Progress.Caption)
	})

	t.Run("toggling an unknown goal", func(t *testing.T) {
		assert.ErrorIs(t, v.Toggle(ctx, uuid.New()), domain.ErrNotFound)
	})
}

func TestGoalsList_Toolbar(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")
	v, err := NewGoalsList(deps)
	require.NoError(t, err)

	light := v.Snapshot().(GoalsListSnapshot)
	assert.Equal(t, domain.AppearanceLight, light.Appearance)
	assert.Equal(t, "images/addgoal-icon.svg", light.Toolbar.AddGoalIcon)
	assert.Equal(t, "images/settings-icon.svg", light.Toolbar.SettingsIcon)

	_, err = deps.Settings.SetDarkMode(ctx, true)
	require.NoError(t, err)

	dark := v.Snapshot().(GoalsListSnapshot)
	assert.Equal(t, domain.AppearanceDark, dark.Appearance)
	assert.Equal(t, "images/addgoal-icon-white.svg", dark.Toolbar.AddGoalIcon)
	assert.Equal(t, "images/settings-icon-white.svg", dark.Toolbar.SettingsIcon)
}

func TestGoalsList_QuoteWithoutQuotes(t *testing.T) {
	deps := newDeps(t, "en")
	deps.Localizer = memLocalizer(t)

	v, err := NewGoalsList(deps)
	require.NoError(t, err)
	assert.Nil(t, v.Quote())

	v.RefreshQuote()
	assert.Nil(t, v.Snapshot().(GoalsListSnapshot).Quote)
}

func TestGoalsList_Spanish(t *testing.T) {
	deps := newDeps(t, "es")
	v, err := NewGoalsList(deps)
	require.NoError(t, err)

	assert.Equal(t, "Mis metas de golf", v.Title())
	assert.Equal(t, "¡Bienvenido, Ada!", v.Greeting())
}

func TestDueText(t *testing.T) {
	loc := bundle.Default().Localizer("en")
	at := func(d time.Duration) domain.Goal {
		return domain.NewGoal("g", "", testNow.Add(d), false)
	}

	tests := []struct {
		name string
		goal domain.Goal
		want string
	}{
		{"today", at(2 * time.Hour), "Due today"},
		{"earlier today", at(-2 * time.Hour), "Due today"},
		{"tomorrow", at(25 * time.Hour), "Due in 1 day"},
		{"next week", at(7 * 24 * time.Hour), "Due in 7 days"},
		{"yesterday", at(-25 * time.Hour), "Overdue by 1 day"},
		{"last week", at(-7 * 24 * time.Hour), "Overdue by 7 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueText(loc, tt.goal, testNow))
		})
	}

	t.Run("completed goals have no due text", func(t *testing.T) {
		g := at(-7 * 24 * time.Hour)
		g.SetCompleted(true, testNow)
		assert.Empty(t, DueText(loc, g, testNow))
	})
}

func TestGoalRow(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")
	g := addGoal(t, deps, "Break 100", 1, false)
	deps.GoalID = g.ID

	v, err := NewGoalRow(deps)
	require.NoError(t, err)
	assert.Equal(t, "Break 100", v.Title())

	snap := v.Snapshot().(GoalRowSnapshot)
	assert.Equal(t, IconOpen, snap.Icon)
	assert.Equal(t, "Due in 1 day", snap.DueText)

	require.NoError(t, v.Toggle(ctx))
	snap = v.Snapshot().(GoalRowSnapshot)
	assert.True(t, snap.IsCompleted)
	assert.Equal(t, IconCompleted, snap.Icon)
	assert.Empty(t, snap.DueText)
	assert.True(t, v.Goal().IsCompleted)
}

func TestAddGoal(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")

	v, err := NewAddGoal(deps)
	require.NoError(t, err)
	assert.Equal(t, "New Goal", v.Title())
	assert.Equal(t, testNow, v.Form.Deadline)
	assert.False(t, v.CanSubmit())

	_, err = v.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, deps.Goals.List())

	v.Form.Title = "  Shoot par on a hole "
	v.Form.Deadline = testNow.Add(48 * time.Hour)
	assert.Empty(t, v.HardDeadlineNote())

	v.Form.IsHardDeadline = true
	snap := v.Snapshot().(AddGoalSnapshot)
	assert.Equal(t, "Note: Date cannot be changed after saving", snap.HardDeadlineNote)
	assert.True(t, snap.CanSubmit)
	assert.Equal(t, "Add", snap.Labels.Submit)

	g, err := v.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Shoot par on a hole", g.Title)
	assert.True(t, g.IsHardDeadline)

	stored, err := deps.Goals.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, stored)
}

func TestAddGoal_Spanish(t *testing.T) {
	deps := newDeps(t, "es")
	v, err := NewAddGoal(deps)
	require.NoError(t, err)

	v.Form.IsHardDeadline = true
	assert.Equal(t, "Nota: la fecha no se puede cambiar después de guardar", v.HardDeadlineNote())
}

func TestEditGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deadline", func(t *testing.T) {
		deps := newDeps(t, "en")
		g := addGoal(t, deps, "Practice putting", 10, false)
		deps.GoalID = g.ID

		v, err := NewEditGoal(deps)
		require.NoError(t, err)
		assert.False(t, v.DeadlineLocked())
		assert.Equal(t, g.Title, v.Form.Title)

		v.Form.Title = "Practice putting daily"
		v.Form.Deadline = g.DeadlineDate.Add(24 * time.Hour)
		saved, err := v.Save(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Practice putting daily", saved.Title)
		assert.Equal(t, v.Form.Deadline, saved.DeadlineDate)
	})

	t.Run("hard deadline is locked", func(t *testing.T) {
		deps := newDeps(t, "en")
		g := addGoal(t, deps, "Qualifier", 10, true)
		deps.GoalID = g.ID

		v, err := NewEditGoal(deps)
		require.NoError(t, err)
		assert.True(t, v.DeadlineLocked())

		snap := v.Snapshot().(EditGoalSnapshot)
		assert.Equal(t, "This is a hard deadline and cannot be changed", snap.HardDeadlineNote)

		v.Form.Deadline = g.DeadlineDate.Add(24 * time.Hour)
		_, err = v.Save(ctx)
		assert.ErrorIs(t, err, domain.ErrHardDeadline)

		v.Form.Deadline = g.DeadlineDate
		v.Form.Description = "Local qualifier"
		saved, err := v.Save(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Local qualifier", saved.Description)
	})

	t.Run("blank title", func(t *testing.T) {
		deps := newDeps(t, "en")
		g := addGoal(t, deps, "Range", 10, false)
		deps.GoalID = g.ID

		v, err := NewEditGoal(deps)
		require.NoError(t, err)
		v.Form.Title = ""
		assert.False(t, v.CanSave())
		_, err = v.Save(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delete with confirmation", func(t *testing.T) {
		deps := newDeps(t, "en")
		g := addGoal(t, deps, "Drop me", 10, false)
		deps.GoalID = g.ID

		v, err := NewEditGoal(deps)
		require.NoError(t, err)
		assert.Empty(t, v.Snapshot().(EditGoalSnapshot).DeleteConfirmation)

		v.RequestDelete()
		snap := v.Snapshot().(EditGoalSnapshot)
		assert.True(t, snap.ConfirmingDelete)
		assert.Contains(t, snap.DeleteConfirmation, "cannot be undone")

		v.CancelDelete()
		assert.False(t, v.ConfirmingDelete)

		require.NoError(t, v.Delete(ctx))
		assert.Empty(t, deps.Goals.List())
		assert.ErrorIs(t, v.Delete(ctx), domain.ErrNotFound)
	})
}

func TestSettingsView(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")

	v, err := NewSettings(deps)
	require.NoError(t, err)
	assert.Equal(t, "Settings", v.Title())

	require.NoError(t, v.SetDarkMode(ctx, true))
	require.NoError(t, v.SetFirstName(ctx, "Grace"))
	assert.ErrorIs(t, v.SetFirstName(ctx, ""), domain.ErrInvalidInput)

	snap := v.Snapshot().(SettingsSnapshot)
	assert.True(t, snap.IsDarkMode)
	assert.Equal(t, domain.AppearanceDark, snap.Appearance)
	assert.Equal(t, "Grace", snap.FirstName)
	assert.Equal(t, "Dark Mode", snap.DarkModeLabel)
}

func TestBallRows(t *testing.T) {
	assert.Nil(t, BallRows(0, 0))

	rows := BallRows(7, 3)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], BallsPerRow)
	assert.Len(t, rows[1], 2)

	assert.Equal(t, Ball{Number: 1, Completed: true}, rows[0][0])
	assert.Equal(t, Ball{Number: 3, Completed: true}, rows[0][2])
	assert.Equal(t, Ball{Number: 4, Completed: false}, rows[0][3])
	assert.Equal(t, Ball{Number: 7, Completed: false}, rows[1][1])

	exact := BallRows(10, 10)
	require.Len(t, exact, 2)
	for _, row := range exact {
		for _, b := range row {
			assert.True(t, b.Completed)
		}
	}
}

func TestGolfBallProgress(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t, "en")
	g := addGoal(t, deps, "One", 5, false)
	addGoal(t, deps, "Two", 5, false)
	_, err := deps.Goals.Toggle(ctx, g.ID)
	require.NoError(t, err)

	v, err := NewGolfBallProgress(deps)
	require.NoError(t, err)
	assert.Equal(t, "Progress", v.Title())

	snap := v.Snapshot().(GolfBallProgressSnapshot)
	assert.Equal(t, "Ada", snap.PlayerName)
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, 2, snap.Total)
	assert.InDelta(t, 0.5, snap.Fraction, 1e-9)
	assert.Equal(t, "1 of 2 goals completed", snap.Caption)

	t.Run("snapshot is json", func(t *testing.T) {
		data, err := json.Marshal(v.Snapshot())
		require.NoError(t, err)
		assert.Contains(t, string(data), `"playerName":"Ada"`)
	})
}
