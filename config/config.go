package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thiremani/typelang/checker"
	"github.com/thiremani/typelang/parser"
	"github.com/thiremani/typelang/types"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "TYPELANG_CONFIG"

// FileName is looked up in the working directory as a last resort.
const FileName = "typelang.yaml"

// File is the on-disk shape of a checker options file:
//
//	read_type: str
//	eval:
//	  policy: dynamic
//	  result_type: (list num)
type File struct {
	ReadType string   `yaml:"read_type,omitempty"`
	Eval     EvalFile `yaml:"eval,omitempty"`
}

type EvalFile struct {
	Policy     string `yaml:"policy,omitempty"`
	ResultType string `yaml:"result_type,omitempty"`
}

// Resolve picks the options file to load: the explicit path, then
// $TYPELANG_CONFIG, then typelang.yaml in dir if it exists. An empty
// result means the defaults apply.
func Resolve(path, dir string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	candidate := filepath.Join(dir, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// Load reads options from path. An empty path yields the defaults.
func Load(path string) (checker.Options, error) {
	if path == "" {
		return checker.DefaultOptions(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return checker.Options{}, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	opts, err := Decode(file)
	if err != nil {
		return checker.Options{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return opts, nil
}

// Decode parses an options document. Unknown keys are rejected.
func Decode(r io.Reader) (checker.Options, error) {
	var raw File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return checker.Options{}, fmt.Errorf("parse: %w", err)
	}
	return raw.Options()
}

// Options converts the file into checker options, filling in defaults for
// anything left out.
func (f File) Options() (checker.Options, error) {
	opts := checker.DefaultOptions()

	if f.ReadType != "" {
		t, err := parseType("read_type", f.ReadType)
		if err != nil {
			return checker.Options{}, err
		}
		opts.ReadType = t
	}

	policy, err := checker.ParseEvalPolicy(strings.TrimSpace(f.Eval.Policy))
	if err != nil {
		return checker.Options{}, fmt.Errorf("eval.policy: %w", err)
	}
	opts.Eval = policy

	if f.Eval.ResultType != "" {
		t, err := parseType("eval.result_type", f.Eval.ResultType)
		if err != nil {
			return checker.Options{}, err
		}
		opts.EvalType = t
	}

	if err := opts.Validate(); err != nil {
		return checker.Options{}, err
	}
	return opts, nil
}

func parseType(field, src string) (types.Type, error) {
	t, errs := parser.ParseType(src)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", field, errs[0])
	}
	return t, nil
}

// FromOptions renders opts back into file form.
func FromOptions(opts checker.Options) File {
	f := File{Eval: EvalFile{Policy: opts.Eval.String()}}
	if opts.ReadType != nil {
		f.ReadType = opts.ReadType.String()
	}
	if opts.EvalType != nil {
		f.Eval.ResultType = opts.EvalType.String()
	}
	return f
}

// Encode writes opts as YAML.
func Encode(w io.Writer, opts checker.Options) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(FromOptions(opts)); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
