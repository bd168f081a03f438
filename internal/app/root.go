package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kosmodev/ctxavail/internal/clock"
	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/output"
)

type globalOptions struct {
	JSON           bool
	JSONL          bool
	Plain          bool
	Fields         string
	Quiet          bool
	Verbose        bool
	NoColor        bool
	Profile        string
	Config         string
	TZ             string
	WorkHoursStart string
	WorkHoursEnd   string
	EdgePolicy     string
	SchemaVersion  string
}

// Execute builds and runs the root command, returning the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		renderTopLevelError(cmd, err)
	}
	return ExitCode(err)
}

func NewRootCommand() *cobra.Command {
	def := contract.DefaultConfig()
	opts := &globalOptions{
		Profile:        "default",
		TZ:             def.DefaultTZ,
		WorkHoursStart: def.WorkHoursStart,
		WorkHoursEnd:   def.WorkHoursEnd,
		EdgePolicy:     def.EdgePolicy,
		SchemaVersion:  contract.SchemaVersion,
	}

	root := &cobra.Command{
		Use:           "ctxavail",
		Short:         "Parse natural-language time queries and decide calendar availability",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       BuildVersionString(),
	}
	root.SetVersionTemplate("ctxavail {{.Version}}\n")

	root.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Output structured JSON")
	root.PersistentFlags().BoolVar(&opts.JSONL, "jsonl", false, "Output newline-delimited JSON")
	root.PersistentFlags().BoolVar(&opts.Plain, "plain", false, "Output stable plain text")
	root.PersistentFlags().StringVar(&opts.Fields, "fields", "", "Projected fields, comma-separated")
	root.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Reduce success output")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose diagnostics")
	root.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	root.PersistentFlags().StringVar(&opts.Profile, "profile", "default", "Config profile")
	root.PersistentFlags().StringVar(&opts.Config, "config", "", "Config file path")
	root.PersistentFlags().StringVar(&opts.TZ, "tz", opts.TZ, "IANA timezone for parsing and output")
	root.PersistentFlags().StringVar(&opts.WorkHoursStart, "work-hours-start", opts.WorkHoursStart, "Work hours start, HH:MM 24h")
	root.PersistentFlags().StringVar(&opts.WorkHoursEnd, "work-hours-end", opts.WorkHoursEnd, "Work hours end, HH:MM 24h")
	root.PersistentFlags().StringVar(&opts.EdgePolicy, "edge-policy", opts.EdgePolicy, "Conflict edge policy: exclusive_end|inclusive")
	root.PersistentFlags().StringVar(&opts.SchemaVersion, "schema-version", contract.SchemaVersion, "Output schema version")

	root.AddCommand(newQueryCmd(opts))
	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newSlotsCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// buildContext resolves global options, validates the output mode, and
// returns a ready-to-use Printer plus the resolved options.
func buildContext(cmd *cobra.Command, opts *globalOptions, command string) (output.Printer, *globalOptions, error) {
	resolved, err := resolveGlobalOptions(cmd, opts)
	if err != nil {
		return output.Printer{}, nil, Wrap(2, err)
	}
	if conflictCount(resolved.JSON, resolved.JSONL, resolved.Plain) > 1 {
		return output.Printer{}, nil, Wrap(2, errors.New("--json, --jsonl, and --plain are mutually exclusive"))
	}
	mode := output.ModeAuto
	if resolved.JSON {
		mode = output.ModeJSON
	} else if resolved.JSONL {
		mode = output.ModeJSONL
	} else if resolved.Plain {
		mode = output.ModePlain
	}

	printer := output.Printer{
		Mode:          mode,
		Command:       command,
		Fields:        splitCSV(resolved.Fields),
		Quiet:         resolved.Quiet,
		NoColor:       resolved.NoColor,
		SchemaVersion: resolved.SchemaVersion,
		Out:           cmd.OutOrStdout(),
		Err:           cmd.ErrOrStderr(),
	}

	configureLogging(printer.Err, resolved.Verbose, resolved.NoColor)
	log.Debug().Str("command", command).Str("mode", string(mode)).Str("tz", resolved.TZ).Str("profile", resolved.Profile).Msg("command.invoked")

	return printer, resolved, nil
}

func renderTopLevelError(cmd *cobra.Command, err error) {
	var appErr AppError
	if errors.As(err, &appErr) && appErr.Printed {
		return
	}
	if wantsStructuredErrorOutput(os.Args[1:]) {
		printer := output.Printer{
			Mode:          output.ModeJSON,
			SchemaVersion: contract.SchemaVersion,
			Err:           cmd.ErrOrStderr(),
		}
		_ = printer.Error(errorCodeForExit(ExitCode(err)), err.Error(), "")
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", err.Error())
}

func wantsStructuredErrorOutput(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case arg == "--json", arg == "--jsonl":
			return true
		case strings.HasPrefix(arg, "--json="), strings.HasPrefix(arg, "--jsonl="):
			return true
		}
	}
	return false
}

func errorCodeForExit(code int) contract.ErrorCode {
	switch code {
	case 2:
		return contract.ErrInvalidUsage
	case 4:
		return contract.ErrNotFound
	default:
		return contract.ErrGeneric
	}
}

func conflictCount(vals ...bool) int {
	total := 0
	for _, v := range vals {
		if v {
			total++
		}
	}
	return total
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolveLocation(tz string) *time.Location {
	return clock.LoadZone(tz)
}

func successWithMeta(p output.Printer, data any, meta map[string]any, warnings []string) error {
	return p.Success(data, meta, warnings)
}
