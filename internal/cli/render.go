package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlfrag"
)

// Output formats supported by the render command.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RenderOptions configures a single render.
type RenderOptions struct {
	// Query is the SQL text with `$N` or `:name` parameters.
	Query string
	// Args is a YAML or JSON document: a list for ordinal parameters, a map
	// for named parameters.
	Args []byte
	// Named switches from `$N` to `:name` parameters.
	Named bool
	// Dialect selects the output placeholders (dollar, colon, atp).
	Dialect string
	// AllowUnused disables the unused argument check.
	AllowUnused bool
}

// Result is the rendered query text and its de-duplicated arguments.
type Result struct {
	Text string `json:"text" yaml:"text"`
	Args []any  `json:"args" yaml:"args"`
}

// PlaceholderByName resolves a dialect name into a placeholder function.
func PlaceholderByName(name string) (sqlfrag.Placeholder, error) {
	switch strings.ToLower(name) {
	case "", "dollar", "postgres":
		return sqlfrag.Dollar, nil
	case "colon", "oracle":
		return sqlfrag.Colon, nil
	case "atp", "sqlserver":
		return sqlfrag.AtP, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (expected dollar, colon or atp)", name)
	}
}

// Render parses the query with its arguments and builds it.
func Render(opts RenderOptions) (Result, error) {
	placeholder, err := PlaceholderByName(opts.Dialect)
	if err != nil {
		return Result{}, err
	}

	var out Result

	if opts.Named {
		var args map[string]any
		if err := yaml.Unmarshal(opts.Args, &args); err != nil {
			return Result{}, fmt.Errorf("failed to decode named arguments: %w", err)
		}

		err = catchUnused(opts.AllowUnused, func() {
			out.Text, out.Args = sqlfrag.ParseNamedWith(placeholder, opts.Query, args).Build()
		})
	} else {
		var args []any
		if err := yaml.Unmarshal(opts.Args, &args); err != nil {
			return Result{}, fmt.Errorf("failed to decode ordinal arguments: %w", err)
		}

		err = catchUnused(opts.AllowUnused, func() {
			out.Text, out.Args = sqlfrag.ParseWith(placeholder, opts.Query, args...).Build()
		})
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to render query: %w", err)
	}

	return out, nil
}

// sqlfrag.CheckUnused is package state; the CLI runs one render per process.
func catchUnused(allowUnused bool, fun func()) error {
	prev := sqlfrag.CheckUnused
	sqlfrag.CheckUnused = !allowUnused
	defer func() { sqlfrag.CheckUnused = prev }()
	return sqlfrag.Catch(fun)
}

// WriteResult encodes the result in the given format.
func WriteResult(out io.Writer, res Result, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)

	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}

// newRenderCmd creates the render command.
func newRenderCmd(logger *zerolog.Logger) *cobra.Command {
	var (
		opts     RenderOptions
		argsFile string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "render [query | -]",
		Short: "Render a parametrized query into text and de-duplicated arguments",
		Long: `Render SQL text with ordinal ($1) or named (:name) parameters.

Arguments are read from a YAML or JSON file: a list for ordinal parameters, a
map for named parameters (--named). Repeated arguments are bound once and
reuse the same placeholder. Pass "-" to read the query from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if query == "-" {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read query from stdin: %w", err)
				}
				query = string(src)
			}
			opts.Query = query

			if argsFile != "" {
				src, err := os.ReadFile(argsFile)
				if err != nil {
					return fmt.Errorf("failed to read arguments file: %w", err)
				}
				opts.Args = src
			}

			logger.Debug().
				Bool("named", opts.Named).
				Str("dialect", opts.Dialect).
				Str("args_file", argsFile).
				Msg("Rendering query")

			res, err := Render(opts)
			if err != nil {
				return err
			}

			logger.Debug().
				Int("args", len(res.Args)).
				Int("length", len(res.Text)).
				Msg("Rendered query")

			return WriteResult(cmd.OutOrStdout(), res, format)
		},
	}

	addRenderFlags(cmd.Flags(), &opts, &argsFile, &format)

	return cmd
}

func addRenderFlags(flags *pflag.FlagSet, opts *RenderOptions, argsFile, format *string) {
	flags.BoolVar(&opts.Named, "named", false, "Use named (:name) parameters instead of ordinal ($1)")
	flags.StringVar(&opts.Dialect, "dialect", "dollar", "Output placeholders: dollar, colon, atp")
	flags.BoolVar(&opts.AllowUnused, "allow-unused", false, "Do not fail on unused arguments")
	flags.StringVarP(argsFile, "args", "a", "", "YAML or JSON file with arguments")
	flags.StringVarP(format, "format", "f", FormatJSON, "Output format: json, yaml")
}
