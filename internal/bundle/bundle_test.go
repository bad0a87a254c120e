package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/golfjourneys/internal/domain"
)

const testManifest = `identifier: com.example.test
name: Test Bundle
version: 0.0.1
default_locale: en
locales: [en, fr]
quotes: quotes.yaml
images:
  flag:
    light: images/flag.svg
    dark: images/flag-dark.svg
  hole:
    light: images/hole.svg
`

func memBundle(t *testing.T, files map[string]string) *Bundle {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(memFs, name, []byte(content), 0o644))
	}
	b, err := New(memFs, SourceMemory)
	require.NoError(t, err)
	return b
}

func TestDefault(t *testing.T) {
	b := Default()

	t.Run("is a singleton", func(t *testing.T) {
		assert.Same(t, b, Default())
	})

	t.Run("embedded manifest", func(t *testing.T) {
		require.NotNil(t, b.Manifest())
		assert.Equal(t, "com.golfjourneys.views", b.Identifier())
		assert.Equal(t, SourceEmbedded, b.Source())
		assert.Equal(t, "en", b.Manifest().DefaultLocale)
		assert.Equal(t, "256142", b.Manifest().BrandColor)
	})

	t.Run("lists files", func(t *testing.T) {
		files, err := b.Files()
		require.NoError(t, err)
		assert.Contains(t, files, "manifest.yaml")
		assert.Contains(t, files, "strings/en.yaml")
		assert.Contains(t, files, "images/bunker-icon.svg")
	})

	t.Run("every manifest image exists", func(t *testing.T) {
		for name, img := range b.Manifest().Images {
			assert.True(t, b.Exists(img.Light), "light image for %s", name)
			if img.Dark != "" {
				assert.True(t, b.Exists(img.Dark), "dark image for %s", name)
			}
		}
	})

	t.Run("has quotes", func(t *testing.T) {
		quotes, err := b.Quotes()
		require.NoError(t, err)
		assert.NotEmpty(t, quotes)
		for _, q := range quotes {
			assert.NotEmpty(t, q.Text)
			assert.NotEmpty(t, q.Author)
		}
	})
}

func TestBundle_ReadFile(t *testing.T) {
	b := memBundle(t, map[string]string{
		"manifest.yaml":   testManifest,
		"images/flag.svg": "<svg/>",
	})

	t.Run("reads a file", func(t *testing.T) {
		data, err := b.ReadFile("images/flag.svg")
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})

	t.Run("normalises leading slash and dots", func(t *testing.T) {
		data, err := b.ReadFile("/images/./flag.svg")
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})

	t.Run("cannot escape the root", func(t *testing.T) {
		_, err := b.ReadFile("../../etc/passwd")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := b.ReadFile("images/nope.svg")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, b.Exists("images/nope.svg"))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := b.ReadFile("")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBundle_Images(t *testing.T) {
	b := memBundle(t, map[string]string{
		"manifest.yaml":        testManifest,
		"images/flag.svg":      "light-flag",
		"images/flag-dark.svg": "dark-flag",
		"images/hole.svg":      "hole",
	})

	light, err := b.Image("flag", domain.AppearanceLight)
	require.NoError(t, err)
	assert.Equal(t, "light-flag", string(light))

	dark, err := b.Image("flag", domain.AppearanceDark)
	require.NoError(t, err)
	assert.Equal(t, "dark-flag", string(dark))

	hole, err := b.Image("hole", domain.AppearanceDark)
	require.NoError(t, err)
	assert.Equal(t, "hole", string(hole), "dark appearance falls back to the light image")

	_, err = b.Image("tee", domain.AppearanceLight)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBundle_QuotesOptional(t *testing.T) {
	b := memBundle(t, map[string]string{
		"manifest.yaml": "identifier: a\nname: b\nversion: '1'\ndefault_locale: en\nlocales: [en]\n",
	})
	quotes, err := b.Quotes()
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestNew_InvalidManifest(t *testing.T) {
	tests := map[string]string{
		"missing identifier":        "name: x\nversion: '1'\ndefault_locale: en\nlocales: [en]\n",
		"default not in locales":    "identifier: a\nname: x\nversion: '1'\ndefault_locale: de\nlocales: [en]\n",
		"bad brand color":           "identifier: a\nname: x\nversion: '1'\ndefault_locale: en\nlocales: [en]\nbrand_color: green\n",
		"image without light":       "identifier: a\nname: x\nversion: '1'\ndefault_locale: en\nlocales: [en]\nimages:\n  flag:\n    dark: d.svg\n",
		"not yaml":                  "identifier: [",
		"locale is not a bcp47 tag": "identifier: a\nname: x\nversion: '1'\ndefault_locale: en\nlocales: [en, 'not a tag']\n",
	}

	for name, manifest := range tests {
		t.Run(name, func(t *testing.T) {
			memFs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(memFs, ManifestFile, []byte(manifest), 0o644))

			_, err := New(memFs, SourceMemory)
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}

	t.Run("no manifest at all", func(t *testing.T) {
		_, err := New(afero.NewMemMapFs(), SourceMemory)
		assert.ErrorIs(t, err, ErrInvalidManifest)
	})
}

func writeDiskBundle(t *testing.T, dir, version string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "strings"), 0o755))
	manifest := "identifier: com.example.disk\nname: Disk\nversion: '" + version + "'\ndefault_locale: en\nlocales: [en]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strings", "en.yaml"), []byte("greeting: Hi\n"), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("embedded by default", func(t *testing.T) {
		b, err := Load(Options{})
		require.NoError(t, err)
		assert.Same(t, Default(), b)
	})

	t.Run("disk bundle", func(t *testing.T) {
		dir := t.TempDir()
		writeDiskBundle(t, dir, "1")

		b, err := Load(Options{Source: SourceDisk, Path: dir})
		require.NoError(t, err)
		assert.Equal(t, SourceDisk, b.Source())
		assert.Equal(t, "com.example.disk", b.Identifier())
		assert.Equal(t, "Hi", b.Localizer("en").String("greeting"))
	})

	t.Run("missing directory falls back to embedded", func(t *testing.T) {
		b, err := Load(Options{Source: SourceDisk, Path: filepath.Join(t.TempDir(), "missing")})
		require.NoError(t, err)
		assert.Same(t, Default(), b)
	})

	t.Run("malformed disk manifest is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("identifier: ["), 0o644))

		_, err := Load(Options{Source: SourceDisk, Path: dir})
		assert.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("disk bundle is read only", func(t *testing.T) {
		dir := t.TempDir()
		writeDiskBundle(t, dir, "1")

		b, err := Load(Options{Source: SourceDisk, Path: dir})
		require.NoError(t, err)
		assert.Error(t, afero.WriteFile(b.fs, "extra.txt", []byte("x"), 0o644))
	})
}

func TestBundle_Reload(t *testing.T) {
	dir := t.TempDir()
	writeDiskBundle(t, dir, "1")

	b, err := Load(Options{Source: SourceDisk, Path: dir})
	require.NoError(t, err)
	assert.Equal(t, "Hi", b.Localizer().String("greeting"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "strings", "en.yaml"), []byte("greeting: Hello\n"), 0o644))
	assert.Equal(t, "Hi", b.Localizer().String("greeting"), "tables are cached until reload")

	require.NoError(t, b.Reload())
	assert.Equal(t, "Hello", b.Localizer().String("greeting"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("identifier: ["), 0o644))
	assert.ErrorIs(t, b.Reload(), ErrInvalidManifest)
	assert.Equal(t, "com.example.disk", b.Identifier(), "previous manifest stays active")
}

func TestBundle_ReloadDuringLoad(t *testing.T) {
	b := memBundle(t, map[string]string{ManifestFile: testManifest})

	loads := 0
	load := func() (string, error) {
		loads++
		if loads == 1 {
			// A reload lands while the first table is being parsed.
			require.NoError(t, b.Reload())
			return "stale", nil
		}
		return "fresh", nil
	}

	v, err := cached(b, "table", load)
	require.NoError(t, err)
	assert.Equal(t, "stale", v)

	v, err = cached(b, "table", load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v, "a table parsed before the reload is not kept")
	assert.Equal(t, 2, loads)

	v, err = cached(b, "table", load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 2, loads, "tables parsed after the reload are cached")
}

func TestBundle_Watch(t *testing.T) {
	dir := t.TempDir()
	writeDiskBundle(t, dir, "1")

	b, err := Load(Options{Source: SourceDisk, Path: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan error, 16)
	require.NoError(t, b.Watch(ctx, func(err error) {
		select {
		case reloads <- err:
		default:
		}
	}))

	writeDiskBundle(t, dir, "2")

	assert.Eventually(t, func() bool {
		return b.Manifest().Version == "2"
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case <-reloads:
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback was not called")
	}
}

func TestBundle_WatchEmbeddedIsNoop(t *testing.T) {
	assert.NoError(t, Default().Watch(context.Background(), nil))
}
