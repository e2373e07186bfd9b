package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/typelang/checker"
	"github.com/thiremani/typelang/config"
	"github.com/thiremani/typelang/types"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestCheckSource(t *testing.T) {
	r := checkSource("a.tl", `(define x 1) (+ x 2)`, checker.DefaultOptions())
	require.True(t, r.ok())
	require.Equal(t, types.Number, r.Type)
	require.Equal(t, "ok", r.status())

	r = checkSource("b.tl", `(+ 1 "a")`, checker.DefaultOptions())
	require.False(t, r.ok())
	require.Equal(t, "ill-typed", r.status())
	require.Len(t, r.TypeErrs, 1)

	r = checkSource("c.tl", `(+ 1`, checker.DefaultOptions())
	require.Equal(t, "syntax", r.status())
	require.NotEmpty(t, r.ParseErrs)
	require.Nil(t, r.Type)

	// a NUL byte must not hide the rest of the file
	r = checkSource("d.tl", "1\x00(+ 1 \"a\")", checker.DefaultOptions())
	require.False(t, r.ok())
	require.Equal(t, "syntax", r.status())
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "1.tl", `"s"`),
		writeFile(t, dir, "2.tl", `1`),
		filepath.Join(dir, "missing.tl"),
		writeFile(t, dir, "3.tl", `#t`),
	}

	results := checkFiles(paths, checker.DefaultOptions())
	require.Len(t, results, 4)
	for i, r := range results {
		require.Equal(t, paths[i], r.File)
	}
	require.Equal(t, types.String, results[0].Type)
	require.Equal(t, types.Number, results[1].Type)
	require.Error(t, results[2].Err)
	require.Equal(t, "unreadable", results[2].status())
	require.Equal(t, types.Boolean, results[3].Type)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.tl", `1`)
	a := writeFile(t, dir, "a.tl", `1`)
	writeFile(t, dir, "notes.txt", `x`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.tl"), 0755))

	files, err := collectFiles([]string{dir, "extra.tl"})
	require.NoError(t, err)
	require.Equal(t, []string{a, b, "extra.tl"}, files)
}

func TestRun(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()
	good := writeFile(t, dir, "good.tl", `(define id (lambda ((x : num)) x)) (id 4)`)
	bad := writeFile(t, dir, "bad.tl", `(car 1)`)

	var stdout, stderr bytes.Buffer
	code := run([]string{good}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, good+": num\n", stdout.String())
	require.Contains(t, stderr.String(), "✅ 1 file(s) well typed")

	stdout.Reset()
	stderr.Reset()
	code = run([]string{good, bad}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Equal(t, good+": num\n", stdout.String())
	require.Contains(t, stderr.String(), bad+":1:6: car: expected a pair, got num")
	require.Contains(t, stderr.String(), bad+": error")
	require.Contains(t, stderr.String(), "1 of 2 file(s) failed")
}

func TestRunConfig(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()
	src := writeFile(t, dir, "read.tl", `(+ (read) 1)`)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{src}, &stdout, &stderr))

	cfg := writeFile(t, dir, "opts.yaml", "read_type: num\n")
	stdout.Reset()
	stderr.Reset()
	require.Equal(t, 0, run([]string{"-config", cfg, src}, &stdout, &stderr))
	require.Contains(t, stderr.String(), "Using config: "+cfg)

	t.Setenv(config.EnvVar, cfg)
	stdout.Reset()
	require.Equal(t, 0, run([]string{src}, &stdout, &stderr))

	broken := writeFile(t, dir, "broken.yaml", "eval:\n  policy: never\n")
	stderr.Reset()
	require.Equal(t, 1, run([]string{"-config", broken, src}, &stdout, &stderr))
	require.Contains(t, stderr.String(), "eval.policy")
}

func TestRunVersionAndBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	require.True(t, strings.HasPrefix(stdout.String(), "typelang "+Version))

	require.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}

func TestResultLog(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "results.log")
	good := writeFile(t, dir, "good.tl", `(cons 1 "a")`)
	bad := writeFile(t, dir, "bad.tl", `(+ 1 "a") `)

	var stdout, stderr bytes.Buffer
	run([]string{"-log", logPath, good}, &stdout, &stderr)
	run([]string{"-log", logPath, bad}, &stdout, &stderr)

	entries, err := readResults(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "ok", entries[0].Status)
	require.Equal(t, good, entries[0].File)
	require.Equal(t, "(pair num str)", entries[0].Detail)
	require.Equal(t, "ill-typed", entries[1].Status)
	require.Equal(t, "1 type error(s)", entries[1].Detail)

	run([]string{"-log", logPath, bad}, &stdout, &stderr)
	stdout.Reset()
	require.Equal(t, 0, run([]string{"-log", logPath, "-summary"}, &stdout, &stderr))
	require.Equal(t,
		"ok\t"+good+"\t(pair num str) (1 run(s))\n"+
			"ill-typed\t"+bad+"\t1 type error(s) (2 run(s))\n"+
			"2 file(s), 1 failing, 3 run(s) logged\n",
		stdout.String())

	require.Equal(t, 2, run([]string{"-summary"}, &stdout, &stderr))
}

func TestRunPrintConfig(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()
	cfg := writeFile(t, dir, "opts.yaml", "read_type: (list num)\neval:\n  policy: dynamic\n  result_type: bool\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", cfg, "-print-config"}, &stdout, &stderr))

	opts, err := config.Decode(&stdout)
	require.NoError(t, err)
	require.Equal(t, "(list num)", opts.ReadType.String())
	require.Equal(t, checker.EvalDynamic, opts.Eval)
	require.Equal(t, types.Boolean, opts.EvalType)
}

func TestIncomplete(t *testing.T) {
	require.True(t, incomplete(`(let ((x 1))`))
	require.True(t, incomplete(`(`))
	require.False(t, incomplete(`(+ 1 2)`))
	require.False(t, incomplete(`x`))
	require.False(t, incomplete(`(+ 1 ")(")`))
}

func TestSession(t *testing.T) {
	s := newSession(checker.DefaultOptions())
	var out bytes.Buffer

	s.eval(&out, `(define sq (lambda ((n : num)) (* n n)))`)
	require.Equal(t, "sq : (num -> num)\n", out.String())

	out.Reset()
	s.eval(&out, `(sq 3) (sq "3")`)
	require.Equal(t, "num\nrepl:1:12: argument 1: expected num, got str\nerror: argument 1: expected num, got str\n", out.String())

	out.Reset()
	s.eval(&out, `(define s "a")`)
	require.True(t, s.command(&out, ":env"))
	require.Equal(t, "s : str\ns : str\nsq : (num -> num)\n", out.String())

	out.Reset()
	require.True(t, s.command(&out, ":reset"))
	s.eval(&out, `sq`)
	require.Contains(t, out.String(), "unbound variable sq")

	out.Reset()
	s.eval(&out, `(+ 1`)
	require.Contains(t, out.String(), `unclosed "("`)

	require.False(t, s.command(&out, ":quit"))
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("TLCACHE", "/tmp/tl-cache")
	require.Equal(t, "/tmp/tl-cache", defaultCacheDir())

	home := t.TempDir()
	t.Setenv("TLCACHE", "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	require.Equal(t, "typelang", filepath.Base(defaultCacheDir()))
}
