package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smmoosavi/the-newtype/internal/logger"
	newtypeinternal "github.com/smmoosavi/the-newtype/internal/newtype"
)

// ErrOutdated is returned by the check command when a generated file differs
// from what the generator would write.
var ErrOutdated = errors.New("generated files are out of date")

// generate runs the generator on the working directory.
type generate func(ctx context.Context, wd string, opts options, patterns []string) (map[string][]byte, error)

func runMain(ctx context.Context, wd string, opts options, patterns []string) (map[string][]byte, error) {
	return newtypeinternal.Main(ctx, wd, os.Environ(), opts.Tags, opts.Tests, opts.Output, patterns, nil)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(runMain)
}

func newRootCmdWith(gen generate) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "newtype [flags] [packages]",
		Short:         "Generate Newtype implementations for //newtype:derive types",
		Version:       newtypeinternal.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			return logger.Initialize(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, gen, opts, patternsOrDefault(args))
		},
	}
	addFlags(cmd)
	cmd.AddCommand(newCheckCmd(gen))
	return cmd
}

func newCheckCmd(gen generate) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [packages]",
		Short: "Report generated files which are missing or out of date",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, gen, opts, patternsOrDefault(args))
		},
	}
}

func patternsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func runGenerate(cmd *cobra.Command, gen generate, opts options, patterns []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	outs, err := gen(cmd.Context(), wd, opts, patterns)
	if err != nil {
		return err
	}

	for _, out := range slices.Sorted(maps.Keys(outs)) {
		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		if err := os.WriteFile(path, outs[out], 0o644); err != nil {
			return errors.Wrapf(err, "write %s", out)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Generated:", out)
		logger.Logger.Infow("wrote generated file", "path", out, "bytes", len(outs[out]))
	}
	return nil
}

func runCheck(cmd *cobra.Command, gen generate, opts options, patterns []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	outs, err := gen(cmd.Context(), wd, opts, patterns)
	if err != nil {
		return err
	}

	outdated := checkOutputs(cmd.OutOrStdout(), wd, outs)
	if outdated != 0 {
		return errors.WithHint(
			errors.Wrapf(ErrOutdated, "%d file(s)", outdated),
			"run newtype to regenerate them",
		)
	}
	return nil
}

// checkOutputs compares generated code with the files on disk and reports the
// number of files which differ.
func checkOutputs(w io.Writer, wd string, outs map[string][]byte) int {
	outdated := 0
	for _, out := range slices.Sorted(maps.Keys(outs)) {
		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}

		old, err := os.ReadFile(path)
		switch {
		case err != nil:
			fmt.Fprintln(w, "Missing:", out)
			outdated++
		case !bytes.Equal(old, outs[out]):
			fmt.Fprintln(w, "Outdated:", out)
			outdated++
		}
	}
	return outdated
}
