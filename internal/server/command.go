package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gofunc "github.com/njchilds90/gofunc"
)

// NewCommand returns the funcd root command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "funcd",
		Short:         "Serve gofunc tool calls over HTTP.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.ConfigureLogging(); err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return New(cfg, gofunc.NewFactory(), reg, reg).ListenAndServe(ctx)
		},
	}
	AddFlags(cmd.Flags())
	return cmd
}

// Execute runs funcd and exits non-zero on failure.
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
