package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/sapling/parser"
)

// Fmt parses a source file and prints its parse tree, mirroring the
// teacher's lang/format.go dump commands (cli/cmd/fmt.go) but over
// Sapling's own ast package instead of aenv's namespace tuples.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`

	YAML   bool `help:"Format as YAML instead of JSON"`
	Indent int  `default:"2" help:"Indent width" short:"i"`
}

// Run executes the fmt command.
func (f *Fmt) Run(_ context.Context) error {
	var (
		data []byte
		err  error
	)

	if f.Source == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(f.Source)
	}

	if err != nil {
		return ErrUnsupported.Wrap(err)
	}

	code, err := parser.Parse(string(data))
	if err != nil {
		return err
	}

	if f.YAML {
		out, err := yaml.MarshalWithOptions(code, yaml.Indent(f.Indent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		fmt.Print(string(out))

		return nil
	}

	var out []byte
	if f.Indent > 0 {
		out, err = json.MarshalIndent(code, "", strings.Repeat(" ", f.Indent))
	} else {
		out, err = json.Marshal(code)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	fmt.Println(string(out))

	return nil
}
