package apply

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"applybasics/internal/console"
	"applybasics/internal/model"
	"applybasics/internal/rewrite"
)

const replacement = "#include \"nui/core/basics/basics.h\"\n"

type fixture struct {
	root   string
	out    bytes.Buffer
	logs   *observer.ObservedLogs
	driver *Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir()}
	for _, pattern := range model.IgnorePatterns {
		if strings.Contains(f.root, pattern) {
			t.Skipf("temp dir %q contains ignore pattern %q", f.root, pattern)
		}
	}

	cfg := model.DefaultConfig(filepath.Join(f.root, "scripts", "apply-basics"))
	f.write(t, model.CanonicalHeader, "#include \"a.h\"\n#include \"b.h\"  // IWYU pragma: export\n")
	refs, err := rewrite.LoadReferenceSet(cfg)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	f.logs = logs
	f.driver = NewDriver(cfg, rewrite.NewRewriter(cfg, refs), console.NewNotifier(&f.out), zap.New(core))
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "nui/core/a.h", NormalizePath("nui//core/a.h"))
	assert.Equal(t, "/abs/a.h", NormalizePath("//abs//a.h"))
	assert.Equal(t, "a//b", NormalizePath("a///b"), "single pass")
	assert.Equal(t, "plain.cc", NormalizePath("plain.cc"))
}

func TestDriver_Ignored(t *testing.T) {
	d := NewDriver(model.DefaultConfig("/x/scripts/apply-basics"), nil, nil, nil)

	assert.True(t, d.Ignored("nui/core/basics/vector_tricks.h"))
	assert.True(t, d.Ignored("third_party/lib/foo.h"))
	assert.True(t, d.Ignored("nui/calibration.cc"), "plain substring match")
	assert.False(t, d.Ignored("nui/core/indexing/range.h"))
}

func TestDriver_Run(t *testing.T) {
	f := newFixture(t)
	dirty := f.write(t, "nui/core/indexing/range.h", "#pragma once\n#include \"a.h\"\n#include \"c.h\"\n")
	clean := f.write(t, "nui/core/indexing/macro.h", "#include \"c.h\"\n")
	skipped := f.write(t, "nui/core/basics/vector_tricks.h", "#include \"a.h\"\n")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, p := range []string{clean, skipped} {
		require.NoError(t, os.Chtimes(p, old, old))
	}

	sum, err := f.driver.Run([]string{dirty, clean, skipped})
	require.NoError(t, err)

	for _, p := range []string{clean, skipped} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "%s must not be written", p)
	}

	assert.Equal(t, Summary{Skipped: 1, Checked: 2, Rewritten: 1}, sum)
	assert.Equal(t, "#pragma once\n"+replacement+"#include \"c.h\"\n", read(t, dirty))
	assert.Equal(t, "#include \"c.h\"\n", read(t, clean))
	assert.Equal(t, "#include \"a.h\"\n", read(t, skipped))

	want := "Checking " + dirty + "\n" +
		"Processing " + dirty + "\n" +
		"Checking " + clean + "\n" +
		"Skipping " + skipped + "\n"
	assert.Equal(t, want, f.out.String())

	entries := f.logs.FilterMessage("Rewrote file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, dirty, entries[0].ContextMap()["path"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["replaced"])
}

func TestDriver_NormalizesBeforeOpening(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "nui/a.cc", "#include \"b.h\"\n")
	doubled := strings.Replace(path, "/nui/", "//nui//", 1)

	_, err := f.driver.Run([]string{doubled})
	require.NoError(t, err)

	assert.Equal(t, replacement, read(t, path))
	assert.Contains(t, f.out.String(), "Processing "+path+"\n")
}

func TestDriver_IgnoredPathsAreNeverRead(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.root, "third_party", "lib", "gone.h")

	sum, err := f.driver.Run([]string{missing})

	require.NoError(t, err)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, "Skipping "+missing+"\n", f.out.String())
}

func TestDriver_AbortsOnFirstError(t *testing.T) {
	f := newFixture(t)
	first := f.write(t, "nui/first.cc", "#include \"a.h\"\n")
	missing := filepath.Join(f.root, "nui", "missing.cc")
	last := f.write(t, "nui/last.cc", "#include \"a.h\"\n")

	sum, err := f.driver.Run([]string{first, missing, last})

	require.Error(t, err)
	assert.True(t, errors.Is(err, rewrite.ErrReadTarget))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, 1, sum.Rewritten)
	assert.Equal(t, replacement, read(t, first), "earlier work is kept")
	assert.Equal(t, "#include \"a.h\"\n", read(t, last), "later files are not touched")
	assert.NotContains(t, f.out.String(), last)
}

func TestDriver_IdempotentAcrossRuns(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "nui/x.cc", "#include \"a.h\"\n#include \"b.h\" // trailing\n")

	first, err := f.driver.Run([]string{path})
	require.NoError(t, err)
	once := read(t, path)

	second, err := f.driver.Run([]string{path})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Rewritten)
	assert.Equal(t, 0, second.Rewritten)
	assert.Equal(t, once, read(t, path))
}
