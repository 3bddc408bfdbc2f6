package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vk/magnetsetup/internal/app"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/units"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg  app.Config
		ran  bool
		help bool
	)
	cmd := &cobra.Command{
		Use:   "magnetsetup",
		Short: "Create the model files of a magnet simulation",
		Long: `magnetsetup assembles the JSON model document and the .cfg configuration
record of an Insert magnet simulation from a template repository and a
magnet record, read from a local data file or from the magnet database.`,
		Example:       "  magnetsetup --datafile HL-34-data.json --geom Axi --model thelec",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ran = true
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	f := cmd.Flags()
	f.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	f.StringVar(&cfg.Datafile, "datafile", "", "Magnet data file (ex. HL-34-data.json).")
	f.StringVar(&cfg.Magnet, "magnet", "", "Magnet name in the magnet database (ex. HL-34).")
	f.StringVar(&cfg.WorkDir, "wd", "", "Working directory for inputs and outputs.")
	f.StringVar(&cfg.Method, "method", string(selector.CFPDES), "Numerical method: "+joinValues(selector.Methods)+".")
	f.StringVar(&cfg.Time, "time", string(selector.Static), "Time regime: "+joinValues(selector.Times)+".")
	f.StringVar(&cfg.Geom, "geom", string(selector.Axi), "Geometry class: "+joinValues(selector.Geometries)+".")
	f.StringVar(&cfg.Model, "model", string(selector.ThermoMagnetoElastic), "Physics model: "+joinValues(selector.Models)+".")
	f.BoolVar(&cfg.Nonlinear, "nonlinear", false, "Use the nonlinear templates.")
	f.StringVar(&cfg.Cooling, "cooling", string(selector.Mean), "Cooling model: "+joinValues(selector.Coolings)+".")
	f.StringVar(&cfg.DistanceUnit, "distance-unit", string(units.Meter), "Base length unit: meter or millimeter.")
	f.StringVar(&cfg.SettingsPath, "settings", "", "Settings file (default "+app.DefaultSettingsFile+" when present).")
	f.StringVar(&cfg.TemplateRepo, "template-repo", "", "Template repository root (overrides TEMPLATE_REPO).")
	f.StringVar(&cfg.SetupPath, "setup", "", "Setup table file or directory (overrides SETUP_PATH).")
	f.StringVar(&cfg.APIURL, "api-url", "", "Magnet database URL (overrides URL_API).")
	f.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	cmd.MarkFlagsMutuallyExclusive("datafile", "magnet")
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		help = true
		fmt.Fprintf(output, "%s\n\nUsage:\n  %s\n\nExamples:\n%s\n\nOptions:\n%s", c.Long, c.UseLine(), c.Example, c.Flags().FlagUsages())
	})

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		cmd.HelpFunc()(cmd, nil)
		return nil, true, nil
	}

	if err := cmd.Execute(); err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	if help || !ran {
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if _, err := selector.Parse(cfg.Method, cfg.Time, cfg.Geom, cfg.Model, cfg.Cooling); err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	if _, err := units.ParseLength(cfg.DistanceUnit); err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func joinValues[T ~string](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
