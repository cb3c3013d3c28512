package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/job-container-naming/pkg/config"
	"github.com/telekom/job-container-naming/pkg/naming"
	"github.com/telekom/job-container-naming/pkg/output"
	"github.com/telekom/job-container-naming/pkg/system"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath        string
	cfg               *config.Config
	outputFormat      string
	algorithmOverride string
	verbose           bool
	writer            io.Writer
	logger            *zap.Logger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:           "jobname",
		Short:         "Derive storage container names for Batch job output",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("JOBNAME_OUTPUT")
			}
			if rt.algorithmOverride == "" {
				rt.algorithmOverride = os.Getenv("JOBNAME_ALGORITHM")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("JOBNAME_VERBOSE"), "true")
			}

			// Skip config loading for commands that don't need it
			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			return rt.EnsureConfigLoaded()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml, go-template=...")
	root.PersistentFlags().StringVar(&rt.algorithmOverride, "algorithm", "",
		"Digest for hashed names ("+joinAlgorithms()+")")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewDeriveCommand(),
		NewValidateCommand(),
		NewClassicCommand(),
		NewServeCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func joinAlgorithms() string {
	names := make([]string, 0, len(naming.Algorithms()))
	for _, alg := range naming.Algorithms() {
		names = append(names, string(alg))
	}
	return strings.Join(names, ", ")
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("runtime not initialized")
	}
	rt, ok := ctx.Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) EnsureConfigLoaded() error {
	if rt.cfg != nil {
		return nil
	}
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *runtimeState) OutputFormat() string {
	if rt.outputFormat != "" {
		return rt.outputFormat
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return rt.cfg.Settings.OutputFormat
	}
	return config.DefaultOutputFormat
}

func (rt *runtimeState) Printer() (*output.Printer, error) {
	return output.NewPrinter(rt.OutputFormat())
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

// Deriver returns the deriver for the --algorithm flag, falling back to the
// configured algorithm.
func (rt *runtimeState) Deriver() (*naming.Deriver, naming.Algorithm, error) {
	cfg := config.DefaultConfig()
	if rt.cfg != nil {
		cfg = *rt.cfg
	}
	if rt.algorithmOverride != "" {
		cfg.Naming.Algorithm = rt.algorithmOverride
	}
	return cfg.Deriver()
}

// Logger lazily builds the process logger.
func (rt *runtimeState) Logger() (*zap.Logger, error) {
	if rt.logger != nil {
		return rt.logger, nil
	}
	logger, err := system.NewLogger(rt.verbose)
	if err != nil {
		return nil, err
	}
	rt.logger = logger
	return logger, nil
}
