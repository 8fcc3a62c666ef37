package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagDefaults mirrors what the CLI hands over when the user passes no flags.
func flagDefaults() Record {
	m := make(map[string]Value)
	for _, o := range Options() {
		if o.Flag.IsSet() {
			m[o.Name] = o.Flag
		}
	}
	return NewRecord(m)
}

func newTestResolver(buf *bytes.Buffer) *Resolver {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return NewResolver(Defaults(), logger)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultsCoverEveryOption(t *testing.T) {
	d := Defaults()
	assert.Equal(t, len(Options()), d.Len())
	for _, o := range Options() {
		v, ok := d.Get(o.Name)
		require.True(t, ok, "default for %s", o.Name)
		assert.Equal(t, o.Kind, v.Kind(), "kind of %s", o.Name)
		if len(o.Choices) > 0 {
			assert.True(t, o.Allows(v.Str()), "default %q of %s not in choices", v.Str(), o.Name)
		}
	}
}

func TestResolve_NoConfigFile(t *testing.T) {
	var buf bytes.Buffer
	rec, src, err := newTestResolver(&buf).Resolve(flagDefaults(), "")
	require.NoError(t, err)

	assert.Equal(t, SourceFlags, src)
	assert.Equal(t, len(Options()), rec.Len())
	assert.True(t, rec.Bool("match"), "flag default overrides default record")
	assert.Equal(t, "none", rec.String("ft_color"))
	assert.Equal(t, "red", rec.String("super_color"), "no flag default, default record applies")
	assert.Equal(t, "./", rec.String("outdir"))
	assert.Equal(t, 300, rec.Int("pgwords"))
	assert.True(t, rec.Bool("chk_orig"))
	assert.Equal(t, "", rec.ValidatorPath())
}

func TestResolve_AuditLinePerKey(t *testing.T) {
	var buf bytes.Buffer
	rec, _, err := newTestResolver(&buf).Resolve(flagDefaults(), "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, rec.Len())
	assert.Contains(t, lines[0], "key=outdir")
	assert.Contains(t, lines[len(lines)-1], "key=DEBUG")
}

func TestResolve_FlagOverrides(t *testing.T) {
	var buf bytes.Buffer
	flags := flagDefaults().
		With("pages", IntValue(250)).
		With("footer", BoolValue(true)).
		With("super_color", EnumValue("blue"))

	rec, src, err := newTestResolver(&buf).Resolve(flags, "")
	require.NoError(t, err)
	assert.Equal(t, SourceFlags, src)
	assert.Equal(t, 250, rec.Int("pages"))
	assert.True(t, rec.Bool("footer"))
	assert.Equal(t, "blue", rec.String("super_color"))
}

func TestResolve_MissingFileFallsBack(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(&buf)

	want, _, err := r.Resolve(flagDefaults(), "")
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "missing.json")
	got, src, err := r.Resolve(flagDefaults(), missing)
	require.NoError(t, err, "missing config file must not surface an error")
	assert.Equal(t, SourceFlags, src)
	assert.True(t, want.Equal(got))
}

func TestResolve_FileWinsWholesale(t *testing.T) {
	var buf bytes.Buffer
	path := writeFile(t, "good.json", `{"pgwords": 500}`)

	flags := flagDefaults().With("footer", BoolValue(true))
	rec, src, err := newTestResolver(&buf).Resolve(flags, path)
	require.NoError(t, err)

	assert.Equal(t, SourceFile, src)
	assert.True(t, rec.Equal(NewRecord(map[string]Value{"pgwords": IntValue(500)})))
	assert.False(t, rec.Has("footer"), "flags are not merged over a config file")
	assert.False(t, rec.Has("outdir"), "defaults are not merged over a config file")
	assert.Contains(t, buf.String(), "Using config file")
}

func TestResolve_MalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken json", "bad.json", `{"pgwords": `},
		{"not an object", "list.json", `[1, 2, 3]`},
		{"wrong int type", "int.json", `{"pgwords": "many"}`},
		{"fractional int", "frac.json", `{"pages": 2.5}`},
		{"wrong bool type", "bool.json", `{"chk_orig": "True"}`},
		{"wrong string type", "str.json", `{"outdir": 7}`},
		{"broken yaml", "bad.yaml", "pgwords: [1,\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			path := writeFile(t, tc.file, tc.content)
			_, _, err := newTestResolver(&buf).Resolve(flagDefaults(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedConfig)
		})
	}
}

func TestLoadFile_UnknownKeysIgnored(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"ft_align": "left", "colour": "mauve", "DEBUG": true}`)
	rec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ft_align", "DEBUG"}, rec.Keys())
	assert.Equal(t, "left", rec.String("ft_align"))
	assert.True(t, rec.Bool("DEBUG"))
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
outdir: /tmp/paged
pgwords: 275
footer: true
ft_color: blue
epubcheck: /usr/local/bin/epubcheck
`)
	rec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Len())
	assert.Equal(t, "/tmp/paged", rec.String("outdir"))
	assert.Equal(t, 275, rec.Int("pgwords"))
	assert.True(t, rec.Bool("footer"))
	assert.Equal(t, "blue", rec.String("ft_color"))
	assert.Equal(t, "/usr/local/bin/epubcheck", rec.ValidatorPath())
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/cfg.json")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestWordsPerPage(t *testing.T) {
	tests := []struct {
		name      string
		pgwords   int
		pages     int
		wordcount int
		want      int
	}{
		{"pgwords when pages is zero", 300, 0, 90000, 300},
		{"derived from pages", 300, 300, 90000, 300},
		{"pages overrides pgwords", 250, 100, 90000, 900},
		{"integer division", 300, 7, 100, 14},
		{"negative pages ignored", 280, -1, 1000, 280},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := Defaults().With("pgwords", IntValue(tc.pgwords)).With("pages", IntValue(tc.pages))
			assert.Equal(t, tc.want, WordsPerPage(rec, tc.wordcount))
		})
	}
}

func TestRecordImmutable(t *testing.T) {
	base := Defaults()
	changed := base.With("pgwords", IntValue(1))
	assert.Equal(t, 300, base.Int("pgwords"))
	assert.Equal(t, 1, changed.Int("pgwords"))

	m := base.Map()
	m["pgwords"] = 9
	assert.Equal(t, 300, base.Int("pgwords"))
}

func TestToolPaths(t *testing.T) {
	for _, p := range []string{"", "none", "NONE", "  "} {
		rec := Defaults().With("epubcheck", StringValue(p)).With("ebookconvert", StringValue(p))
		assert.Empty(t, rec.ValidatorPath(), "epubcheck=%q", p)
		assert.Empty(t, rec.ConverterPath(), "ebookconvert=%q", p)
	}
	rec := Defaults().With("ebookconvert", StringValue("/opt/calibre/ebook-convert"))
	assert.Equal(t, "/opt/calibre/ebook-convert", rec.ConverterPath())
}
