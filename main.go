package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/thiremani/typelang/checker"
	"github.com/thiremani/typelang/config"
	"github.com/thiremani/typelang/parser"
	"github.com/thiremani/typelang/token"
	"github.com/thiremani/typelang/types"
)

var TL_SUFFIX = ".tl"

var HISTORY_FILE = "history"

// defaultCacheDir is $TLCACHE, else typelang under the user cache
// directory, else a dot directory under home.
func defaultCacheDir() string {
	if env := os.Getenv("TLCACHE"); env != "" {
		return env
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "typelang")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".typelang")
}

// result is the outcome of checking one file.
type result struct {
	File      string
	Type      types.Type
	ParseErrs []*token.CompileError
	TypeErrs  []*token.CompileError
	Err       error // the file could not be read
}

func (r result) ok() bool {
	return r.Err == nil && len(r.ParseErrs) == 0 && len(r.TypeErrs) == 0 && !types.IsError(r.Type)
}

func (r result) status() string {
	switch {
	case r.Err != nil:
		return "unreadable"
	case len(r.ParseErrs) > 0:
		return "syntax"
	case !r.ok():
		return "ill-typed"
	}
	return "ok"
}

func checkSource(name, src string, opts checker.Options) result {
	r := result{File: name}
	program, errs := parser.ParseString(name, src)
	if len(errs) > 0 {
		r.ParseErrs = errs
		return r
	}
	c := checker.New(opts)
	r.Type = c.CheckProgram(program)
	r.TypeErrs = c.Errors
	return r
}

func checkFile(path string, opts checker.Options) result {
	source, err := os.ReadFile(path)
	if err != nil {
		return result{File: path, Err: err}
	}
	return checkSource(path, string(source), opts)
}

// checkFiles checks every file on its own goroutine with its own Checker.
// Results come back in the order of paths.
func checkFiles(paths []string, opts checker.Options) []result {
	results := make([]result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = checkFile(path, opts)
		}(i, path)
	}
	wg.Wait()
	return results
}

// collectFiles expands directories into the .tl files they hold.
// With no arguments the working directory is used.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current working directory: %w", err)
		}
		args = []string{cwd}
	}

	files := []string{}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// missing files are reported by checkFile
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		found := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				// not recursive
				continue
			}
			if strings.HasSuffix(entry.Name(), TL_SUFFIX) {
				found = append(found, filepath.Join(arg, entry.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func report(w io.Writer, r result) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "⚠️ Error reading %s: %v\n", r.File, r.Err)
	case len(r.ParseErrs) > 0:
		for _, e := range r.ParseErrs {
			fmt.Fprintf(w, "%s\n", e)
		}
	default:
		for _, e := range r.TypeErrs {
			fmt.Fprintf(w, "%s\n", e)
		}
		fmt.Fprintf(w, "%s: %s\n", r.File, r.Type)
	}
}

type cliFlags struct {
	repl        bool
	configPath  string
	printConfig bool
	logPath     string
	summary     bool
	version     bool
	files       []string
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("typelang", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&f.repl, "repl", false, "start an interactive type checking session")
	fs.StringVar(&f.configPath, "config", "", "checker options file (default $"+config.EnvVar+" or ./"+config.FileName+")")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the checker options in effect as YAML and exit")
	fs.StringVar(&f.logPath, "log", "", "append one line per checked file to this log")
	fs.BoolVar(&f.summary, "summary", false, "print the latest result per file recorded in the -log file and exit")
	fs.BoolVar(&f.version, "version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: typelang [flags] [files or directories...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.files = fs.Args()
	return f, nil
}

// run is main without the process exit so it can be tested.
func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if f.version {
		printVersion(stdout)
		return 0
	}

	cwd, _ := os.Getwd()
	cfgPath := config.Resolve(f.configPath, cwd)
	opts, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "⚠️ %v\n", err)
		return 1
	}
	if cfgPath != "" {
		fmt.Fprintf(stderr, "Using config: %s\n", cfgPath)
	}
	if f.printConfig {
		if err := config.Encode(stdout, opts); err != nil {
			fmt.Fprintf(stderr, "⚠️ %v\n", err)
			return 1
		}
		return 0
	}
	if f.summary {
		if f.logPath == "" {
			fmt.Fprintf(stderr, "⚠️ -summary needs -log\n")
			return 2
		}
		entries, err := readResults(f.logPath)
		if err != nil {
			fmt.Fprintf(stderr, "⚠️ Failed reading result log %q: %v\n", f.logPath, err)
			return 1
		}
		summarize(stdout, entries)
		return 0
	}

	if f.repl {
		if err := runRepl(opts, filepath.Join(defaultCacheDir(), HISTORY_FILE), stdout); err != nil {
			fmt.Fprintf(stderr, "⚠️ %v\n", err)
			return 1
		}
		return 0
	}

	files, err := collectFiles(f.files)
	if err != nil {
		fmt.Fprintf(stderr, "⚠️ %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "⚠️ No %s files to check\n", TL_SUFFIX)
		return 1
	}

	results := checkFiles(files, opts)
	failed := 0
	for _, r := range results {
		if r.ok() {
			report(stdout, r)
			continue
		}
		failed++
		report(stderr, r)
	}

	if f.logPath != "" {
		if err := appendResults(f.logPath, results); err != nil {
			fmt.Fprintf(stderr, "⚠️ Failed writing result log %q: %v\n", f.logPath, err)
		}
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "⚠️ %d of %d file(s) failed to type check\n", failed, len(results))
		return 1
	}
	fmt.Fprintf(stderr, "✅ %d file(s) well typed\n", len(results))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
