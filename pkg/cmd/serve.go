package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/telekom/job-container-naming/pkg/api"
)

func NewServeCommand() *cobra.Command {
	var (
		listen string
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve container name derivation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if debug {
				rt.verbose = true
			}
			logger, err := rt.Logger()
			if err != nil {
				return err
			}
			log := logger.Sugar()

			cfg := *rt.cfg
			if listen != "" {
				cfg.Server.ListenAddress = listen
			}
			deriver, alg, err := rt.Deriver()
			if err != nil {
				return err
			}

			server := api.NewServer(logger, cfg, debug)
			defer server.Close()
			if err := server.RegisterAll([]api.APIController{
				api.NewContainerNameController(log, deriver, alg),
				api.StorageAccountController{},
			}); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Infow("Starting jobname service", "algorithm", alg, "address", cfg.Server.ListenAddress)
			return server.Listen(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug mode (development logging, permissive CORS)")

	return cmd
}
