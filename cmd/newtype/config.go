package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// options are the command-line options. Every flag can also be set by an
// environment variable prefixed with NEWTYPE_, such as NEWTYPE_TAGS.
type options struct {
	Tags    string
	Tests   bool
	Output  string
	Color   string
	Verbose bool
}

func addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("tags", "b", "", "comma-separated build tags")
	flags.BoolP("tests", "t", false, "also generate for types declared in test files")
	flags.StringP("output", "o", "newtype_gen.go", "output file name")
	flags.StringP("color", "c", "auto", "colorize (auto|always|never)")
	flags.BoolP("verbose", "v", false, "log progress to stderr")
}

// loadOptions reads the options from the flags of cmd and the environment.
// Flags set explicitly take precedence.
func loadOptions(cmd *cobra.Command) (options, error) {
	v := viper.New()
	v.SetEnvPrefix("NEWTYPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return options{}, err
	}

	opts := options{
		Tags:    v.GetString("tags"),
		Tests:   v.GetBool("tests"),
		Output:  v.GetString("output"),
		Color:   v.GetString("color"),
		Verbose: v.GetBool("verbose"),
	}

	switch opts.Color {
	case "auto", "always", "never":
	default:
		return options{}, errors.WithHint(
			errors.Newf("invalid color value: %q", opts.Color),
			"use one of auto, always, or never",
		)
	}
	if opts.Output == "" {
		return options{}, errors.New("output file name is empty")
	}
	return opts, nil
}
