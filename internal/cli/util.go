package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	gofunc "github.com/njchilds90/gofunc"
)

// GetFlag returns a boolean flag, or false if it is not defined on cmd.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Debugf("flag %q: %v", flag, err)
		return false
	}
	return r
}

func getFloat(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		panic(err)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// addSourceFlags registers the flags naming the function a command works on.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "function tree file (JSON or YAML)")
	cmd.Flags().String("name", "", "primitive name (const, ident, power, exp, polynomial)")
	cmd.Flags().String("payload", "", "primitive payload: an integer, or a comma-separated list such as 1,2,5 or [7]")
}

// loadFunction builds the function named by --file or --name/--payload.
func loadFunction(cmd *cobra.Command) (gofunc.Function, error) {
	file, name := getString(cmd, "file"), getString(cmd, "name")
	switch {
	case file != "" && name != "":
		return nil, fmt.Errorf("--file and --name are mutually exclusive")
	case file != "":
		return readFunctionFile(file)
	case name != "":
		p, err := parsePayload(getString(cmd, "payload"))
		if err != nil {
			return nil, err
		}
		return create(name, p)
	}
	return nil, fmt.Errorf("one of --file or --name is required")
}

func create(name string, p gofunc.Payload) (gofunc.Function, error) {
	f, err := gofunc.Create(name, p)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	return f, nil
}

// readFunctionFile parses a function tree; JSON is accepted as YAML.
func readFunctionFile(filename string) (gofunc.Function, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	f, err := parseFunction(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debugf("loaded %s from %s", f, filename)
	return f, nil
}

func parseFunction(data []byte) (gofunc.Function, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(js, &m); err != nil {
		return nil, err
	}
	return gofunc.FromJSON(m)
}

// parsePayload reads "" as none, "3" as an integer and "1,2,5" or "[1,2,5]"
// as a list. "[]" is an empty list; empty elements such as in "1,,2" are
// rejected.
func parsePayload(s string) (gofunc.Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gofunc.None(), nil
	}
	list := strings.ContainsAny(s, ",[]")
	s = strings.Trim(s, "[]")
	if !list {
		n, err := strconv.Atoi(s)
		if err != nil {
			return gofunc.Payload{}, fmt.Errorf("%w: %q is not an integer", gofunc.ErrMalformedPayload, s)
		}
		return gofunc.Int(n), nil
	}
	if strings.TrimSpace(s) == "" {
		return gofunc.Ints(), nil
	}
	var ns []int
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return gofunc.Payload{}, fmt.Errorf("%w: element %d is empty", gofunc.ErrMalformedPayload, i)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return gofunc.Payload{}, fmt.Errorf("%w: %q is not an integer", gofunc.ErrMalformedPayload, part)
		}
		ns = append(ns, n)
	}
	return gofunc.Ints(ns...), nil
}

// parseOperand resolves a combine operand: a tree file, or a primitive
// written name:payload (power:4, polynomial:1,6, ident). Anything else is
// returned as the raw string.
func parseOperand(arg string) (interface{}, error) {
	if _, err := os.Stat(arg); err == nil {
		return readFunctionFile(arg)
	}
	name, payload, _ := strings.Cut(arg, ":")
	if _, ok := gofunc.NewFactory().Lookup(name); !ok {
		return arg, nil
	}
	p, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}
	return create(name, p)
}

// labelled reports whether output should carry labels: only when writing to
// a terminal and --plain is not set.
func labelled(cmd *cobra.Command) bool {
	if GetFlag(cmd, "plain") {
		return false
	}
	return isTerminal(cmd.OutOrStdout())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
