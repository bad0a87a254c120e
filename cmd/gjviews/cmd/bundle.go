package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/golfjourneys/cmd/gjviews/internal/output"
)

func newBundleCmd(opts *globalOptions) *cobra.Command {
	bundleCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Inspect the resource bundle",
		Long: `Inspect the resource bundle the view module serves. The bundle is the
embedded one unless APP_BUNDLE=disk and BUNDLE_PATH points at a directory
with a manifest.yaml.`,
	}
	bundleCmd.AddCommand(newBundleInfoCmd(opts), newBundleFilesCmd(opts), newBundleStringCmd(opts))
	return bundleCmd
}

// bundleInfo represents the bundle manifest for display purposes
type bundleInfo struct {
	Identifier    string   `json:"identifier"`
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	Source        string   `json:"source"`
	Root          string   `json:"root,omitempty"`
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales"`
	BrandColor    string   `json:"brandColor,omitempty"`
	Images        []string `json:"images"`
	Quotes        int      `json:"quotes"`
}

func newBundleInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the bundle manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, shutdown, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer shutdown()

			b := a.Views().Bundle()
			m := b.Manifest()

			images := make([]string, 0, len(m.Images))
			for name := range m.Images {
				images = append(images, name)
			}
			sort.Strings(images)

			quotes, err := b.Quotes()
			if err != nil {
				return fmt.Errorf("failed to read quotes: %w", err)
			}

			info := bundleInfo{
				Identifier:    m.Identifier,
				Name:          m.Name,
				Version:       m.Version,
				Source:        string(b.Source()),
				Root:          b.Root(),
				DefaultLocale: m.DefaultLocale,
				Locales:       m.Locales,
				BrandColor:    m.BrandColor,
				Images:        images,
				Quotes:        len(quotes),
			}

			if opts.format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), info)
			}

			root := info.Root
			if root == "" {
				root = "-"
			}
			return output.Fields(cmd.OutOrStdout(), [][2]string{
				{"Identifier", info.Identifier},
				{"Name", info.Name},
				{"Version", info.Version},
				{"Source", info.Source},
				{"Root", root},
				{"Default locale", info.DefaultLocale},
				{"Locales", strings.Join(info.Locales, ", ")},
				{"Brand color", "#" + info.BrandColor},
				{"Images", strings.Join(info.Images, ", ")},
				{"Quotes", strconv.Itoa(info.Quotes)},
			})
		},
	}
}

func newBundleFilesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List every file in the bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, shutdown, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer shutdown()

			files, err := a.Views().Bundle().Files()
			if err != nil {
				return err
			}

			if opts.format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), struct {
					Files []string `json:"files"`
					Count int      `json:"count"`
				}{files, len(files)})
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newBundleStringCmd(opts *globalOptions) *cobra.Command {
	var count int

	stringCmd := &cobra.Command{
		Use:   "string <key> [args...]",
		Short: "Look up a localized string",
		Long: `Look up a localized string in the bundle. Extra arguments fill the
string's placeholders. With --count the key is treated as a plural key and
the .one or .other form is picked.

Examples:
  gjviews bundle string goals.title --locale es
  gjviews bundle string goals.greeting Ada
  gjviews bundle string goal.due_in --count 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, shutdown, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer shutdown()

			key := args[0]
			loc := a.Views().Bundle().Localizer(a.Config.Locale)

			var value string
			if cmd.Flags().Changed("count") {
				value = loc.Plural(key, count)
			} else {
				value = loc.String(key, placeholderArgs(args[1:])...)
			}

			if opts.format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), struct {
					Key    string `json:"key"`
					Locale string `json:"locale"`
					Found  bool   `json:"found"`
					Value  string `json:"value"`
				}{key, loc.Locale(), loc.Has(key) || cmd.Flags().Changed("count"), value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	stringCmd.Flags().IntVar(&count, "count", 0, "Pick the plural form for this count")
	return stringCmd
}

// placeholderArgs passes numeric arguments as integers so %d placeholders work.
func placeholderArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			out[i] = n
		} else {
			out[i] = a
		}
	}
	return out
}
