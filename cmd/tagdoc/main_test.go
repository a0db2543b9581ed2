package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdoc/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeJava(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApplyAndCheck(t *testing.T) {
	dir := t.TempDir()
	foo := writeJava(t, dir, "Foo.java", "package x;\n\n/** Foo. */\npublic class Foo {}\n")
	bar := writeJava(t, dir, "sub/Bar.java", "package x.sub;\n\nclass Bar {}\n")

	out, err := execute(t, "check", "-r", "--since", "1.0", "--author", "A", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 file(s) missing tags")
	assert.Contains(t, out, "missing")

	out, err = execute(t, "apply", "-r", "--since", "1.0", "--author", "A", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files: 2 modified, 0 unchanged, 0 skipped, 0 failed")

	assert.Equal(t, "package x;\n\n/**\n * @since 1.0\n * @author A\nFoo. */\npublic class Foo {}\n", read(t, foo))
	assert.Equal(t, "package x.sub;\n\n/**\n * @since 1.0\n * @author A\n*/\nclass Bar {}\n", read(t, bar))

	out, err = execute(t, "check", "-r", "--since", "1.0", "--author", "A", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files: 0 missing tags, 2 unchanged")
}

func TestApplyDryRun(t *testing.T) {
	dir := t.TempDir()
	foo := writeJava(t, dir, "Foo.java", "class Foo {}\n")

	out, err := execute(t, "apply", "--dry-run", "--author", "A", foo)
	require.NoError(t, err)
	assert.Contains(t, out, "+++ b/"+foo)
	assert.Contains(t, out, "+ * @author A\n")
	assert.Equal(t, "class Foo {}\n", read(t, foo))
}

func TestApplyRequiresTags(t *testing.T) {
	_, err := execute(t, "apply", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to insert")
}

func TestApplyReportsSkippedFiles(t *testing.T) {
	dir := t.TempDir()
	writeJava(t, dir, "package-info.java", "/** Pkg. */\npackage x;\n")
	writeJava(t, dir, "Foo.java", "class Foo {}\n")

	out, err := execute(t, "apply", "--since", "2", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "no type declaration found")
	assert.Contains(t, out, "1 modified")
}

func TestApplyConfigFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tagdoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tags:\n  since: \"1.0\"\n  author: Config\n"), 0o644))
	src := filepath.Join(dir, "src")
	foo := writeJava(t, src, "Foo.java", "class Foo {}\n")

	_, err := execute(t, "apply", "-c", cfgPath, "--author", "Flag", "--tag", "version=3", src)
	require.NoError(t, err)
	assert.Equal(t, "/**\n * @since 1.0\n * @author Flag\n * @version 3\n*/\nclass Foo {}\n", read(t, foo))
}

func TestApplyExclude(t *testing.T) {
	dir := t.TempDir()
	gen := writeJava(t, dir, "gen/Gen.java", "class Gen {}\n")
	foo := writeJava(t, dir, "Foo.java", "class Foo {}\n")

	_, err := execute(t, "apply", "-r", "--exclude", "gen", "--author", "A", dir)
	require.NoError(t, err)
	assert.Equal(t, "class Gen {}\n", read(t, gen))
	assert.NotEqual(t, "class Foo {}\n", read(t, foo))
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, "apply", "--tag", "novalue", "--since", "1", t.TempDir())
	assert.Error(t, err)

	_, err = execute(t, "apply", "--tag", "bad name=1", t.TempDir())
	assert.ErrorIs(t, err, model.ErrInvalidTagFormat)

	_, err = execute(t, "apply", "--locator", "ast", "--since", "1", t.TempDir())
	assert.Error(t, err)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--color", "purple", "apply", "--since", "1", t.TempDir()})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestParseTagFlags(t *testing.T) {
	tags, err := parseTagFlags([]string{"version=3", "@see = Other", "empty="})
	require.NoError(t, err)
	assert.Equal(t, []model.Tag{
		{Name: "version", Value: "3"},
		{Name: "see", Value: "Other"},
		{Name: "empty", Value: ""},
	}, tags)

	_, err = parseTagFlags([]string{"=x"})
	assert.Error(t, err)
}

func TestParseCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"a", "b/**", "c"}, parseCommaSeparated(" a, b/** ,,c "))
	assert.Empty(t, parseCommaSeparated(""))
}
