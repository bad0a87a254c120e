package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/golfjourneys/cmd/gjviews/internal/output"
	"github.com/nfrund/golfjourneys/internal/domain"
)

func newViewsCmd(opts *globalOptions) *cobra.Command {
	viewsCmd := &cobra.Command{
		Use:   "views",
		Short: "List view classes and show view snapshots",
	}
	viewsCmd.AddCommand(newViewsListCmd(opts), newViewsShowCmd(opts))
	return viewsCmd
}

// viewDisplay represents a view class for display purposes
type viewDisplay struct {
	Identifier   string   `json:"identifier"`
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Presentation string   `json:"presentation"`
	Requires     []string `json:"requires"`
	Title        string   `json:"title,omitempty"`
}

// displayName turns an identifier such as "golf-ball-progress" into "Golf Ball Progress".
func displayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}

func newViewsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every view identifier the module resolves",
		Long: `List the compiled-in view classes with their kind, presentation style,
required dependencies and localized title.

Examples:
  gjviews views list
  gjviews views list --format json
  gjviews views list --locale es`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, shutdown, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer shutdown()

			m := a.Views()
			loc := m.Bundle().Localizer(a.Config.Locale)

			var displays []viewDisplay
			for _, id := range m.Identifiers() {
				class, _ := m.ViewClass(id)
				d := viewDisplay{
					Identifier:   class.Identifier(),
					Name:         displayName(class.Identifier()),
					Kind:         class.Kind().String(),
					Presentation: string(class.Presentation()),
					Requires:     class.Requires().Names(),
				}
				if class.TitleKey() != "" {
					d.Title = loc.String(class.TitleKey())
				}
				displays = append(displays, d)
			}

			if opts.format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), struct {
					Views []viewDisplay `json:"views"`
					Count int           `json:"count"`
				}{displays, len(displays)})
			}

			rows := make([][]string, len(displays))
			for i, d := range displays {
				title := d.Title
				if title == "" {
					title = "-"
				}
				requires := strings.Join(d.Requires, ",")
				if requires == "" {
					requires = "-"
				}
				rows[i] = []string{d.Identifier, d.Name, d.Kind, d.Presentation, requires, title}
			}
			return output.Table(cmd.OutOrStdout(),
				[]string{"IDENTIFIER", "NAME", "KIND", "PRESENTATION", "REQUIRES", "TITLE"},
				rows, "No views found")
		},
	}
}

// showOptions seed the in-memory services before a view is built.
type showOptions struct {
	goals    []string
	complete int
	name     string
	dark     bool
}

func newViewsShowCmd(opts *globalOptions) *cobra.Command {
	show := &showOptions{}

	showCmd := &cobra.Command{
		Use:   "show <identifier>",
		Short: "Build a view and print its snapshot",
		Long: `Resolve a view by identifier, build it against in-memory goals and settings,
and print the resulting snapshot.

Goals are given as "title:days" where days is the number of days until the
deadline (negative for overdue). A trailing "!" marks a hard deadline.
Views showing a single goal use the first seeded goal.

Examples:
  gjviews views show welcome
  gjviews views show goals --name Ada --goal "Break 90:12" --goal "Club champs:40!" --complete 1
  gjviews views show edit-goal --goal "Club champs:40!" --format json
  gjviews views show settings --dark --locale es`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			a, shutdown, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer shutdown()

			m := a.Views()
			class, ok := m.ViewClass(id)
			if !ok {
				return fmt.Errorf("unknown view %q, known views: %s", id, strings.Join(m.Identifiers(), ", "))
			}

			ctx := cmd.Context()
			if show.name != "" {
				if _, err := a.Settings().CompleteOnboarding(ctx, show.name); err != nil {
					return err
				}
			}
			if show.dark {
				if _, err := a.Settings().SetDarkMode(ctx, true); err != nil {
					return err
				}
			}

			var first uuid.UUID
			now := time.Now()
			for idx, spec := range show.goals {
				g, err := parseGoal(spec, now)
				if err != nil {
					return err
				}
				if err := a.Goals().Add(ctx, g); err != nil {
					return fmt.Errorf("goal %q: %w", spec, err)
				}
				if idx < show.complete {
					if _, err := a.Goals().Complete(ctx, g.ID); err != nil {
						return err
					}
				}
				if idx == 0 {
					first = g.ID
				}
			}

			// Snapshots use the same instant the goals were seeded at.
			deps := a.Dependencies(first)
			deps.Clock = func() time.Time { return now }

			v, err := class.New(deps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.format == output.FormatJSON {
				return output.JSON(out, struct {
					Identifier   string `json:"identifier"`
					Kind         string `json:"kind"`
					Presentation string `json:"presentation"`
					Title        string `json:"title"`
					Snapshot     any    `json:"snapshot"`
				}{class.Identifier(), class.Kind().String(), string(class.Presentation()), v.Title(), v.Snapshot()})
			}

			if err := output.Fields(out, [][2]string{
				{"Identifier", class.Identifier()},
				{"Kind", class.Kind().String()},
				{"Presentation", string(class.Presentation())},
				{"Title", v.Title()},
			}); err != nil {
				return err
			}
			fmt.Fprintln(out, "Snapshot:")
			return output.JSON(out, v.Snapshot())
		},
	}

	showCmd.Flags().StringArrayVar(&show.goals, "goal", nil, `Seed a goal as "title:days[!]" (repeatable)`)
	showCmd.Flags().IntVar(&show.complete, "complete", 0, "Mark the first N seeded goals completed")
	showCmd.Flags().StringVar(&show.name, "name", "", "Player first name (completes onboarding)")
	showCmd.Flags().BoolVar(&show.dark, "dark", false, "Use the dark appearance")
	return showCmd
}

// maxGoalDays bounds seeded deadlines to a century either side of now.
const maxGoalDays = 36500

// parseGoal reads a goal given as "title:days", with an optional trailing "!"
// for a hard deadline.
func parseGoal(spec string, now time.Time) (domain.Goal, error) {
	idx := strings.LastIndex(spec, ":")
	if idx <= 0 {
		return domain.Goal{}, fmt.Errorf("%w: goal %q must look like title:days", domain.ErrInvalidInput, spec)
	}
	title := strings.TrimSpace(spec[:idx])
	daysText := strings.TrimSpace(spec[idx+1:])

	hard := strings.HasSuffix(daysText, "!")
	daysText = strings.TrimSuffix(daysText, "!")

	days, err := strconv.Atoi(daysText)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("%w: goal %q has invalid days: %v", domain.ErrInvalidInput, spec, err)
	}

	if days > maxGoalDays || days < -maxGoalDays {
		return domain.Goal{}, fmt.Errorf("%w: goal %q is more than %d days away", domain.ErrInvalidInput, spec, maxGoalDays)
	}

	// UTC days are exactly 24h, which keeps DaysRemaining equal to days.
	return domain.NewGoal(title, "", now.UTC().AddDate(0, 0, days), hard), nil
}
