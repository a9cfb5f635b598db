package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/builtin"
	"github.com/ardnew/sapling/cache"
	"github.com/ardnew/sapling/log"
	"github.com/ardnew/sapling/parser"
	"github.com/ardnew/sapling/vm"
)

// Run executes a source file, a precompiled ".sapped" cache, or a
// directory of ".sap" files (spec.md §6.1).
type Run struct {
	File string `arg:"" help:"Source file (.sap), compiled cache (.sapped), or directory" type:"path"`

	Compile   bool `help:"Serialize the parse tree to a sidecar .sapped file before running" short:"c"`
	Time      bool `help:"Print elapsed execution time"                                      short:"t"`
	Recursive bool `help:"When file is a directory, walk subdirectories for *.sap files"     short:"r"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	logger := LoggerFrom(ctx)
	start := time.Now()

	info, err := os.Stat(r.File)
	if err != nil {
		return ErrNoSources.Wrap(err)
	}

	files := []string{r.File}
	if info.IsDir() {
		files, err = collectSapFiles(r.File, r.Recursive)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			return ErrNoSources
		}
	}

	for _, file := range files {
		logger.DebugContext(ctx, "run", slog.String("file", file))

		if err := r.runFile(ctx, logger, file); err != nil {
			return err
		}
	}

	if r.Time {
		fmt.Fprintf(os.Stderr, "elapsed: %s\n", time.Since(start))
	}

	return nil
}

// runFile parses (or decodes) and evaluates a single file.
func (r *Run) runFile(ctx context.Context, logger log.Logger, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".sapped") {
		f, err := os.Open(path)
		if err != nil {
			return ErrNoSources.Wrap(err)
		}
		defer f.Close()

		code, err := cache.Decode(f)
		if err != nil {
			logger.Diagnostic(ctx, path, err)

			return err
		}

		return execCode(ctx, logger, path, "", code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ErrNoSources.Wrap(err)
	}

	src := string(data)

	code, err := parser.Parse(src)
	if err != nil {
		logger.Diagnostic(ctx, path, err)

		return err
	}

	if r.Compile {
		sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".sapped"

		out, err := os.Create(sidecar)
		if err != nil {
			return err
		}
		defer out.Close()

		if err := cache.Encode(out, code); err != nil {
			return err
		}
	}

	return execCode(ctx, logger, path, src, code)
}

// execCode runs code against a fresh VM whose environment has every
// built-in free function and library installed, and whose importer
// resolves sibling ".sap"/".sapped" files before falling back to the
// built-in module registry (spec.md §4.10).
func execCode(ctx context.Context, logger log.Logger, path, src string, code *ast.Code) error {
	env := vm.NewEnv()
	builtin.Install(env)

	importer := cache.NewImporter(filepath.Dir(path), builtin.NewRegistry())

	v := vm.New(src, env, importer)
	v.Reporter.Out = os.Stderr

	var reportErr error

	v.Reporter.Hook = func(formatted string) { reportErr = errors.New(formatted) }

	if err := v.Run(code); err != nil {
		logger.Diagnostic(ctx, path, err)
		v.Fatal(err)

		return reportErr
	}

	return nil
}

// collectSapFiles gathers ".sap" files under dir, walking subdirectories
// when recursive is set.
func collectSapFiles(dir string, recursive bool) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".sap") {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}

		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".sap") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
