package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/socialauth/internal/app"
	"github.com/dropDatabas3/socialauth/internal/config"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
	"github.com/dropDatabas3/socialauth/internal/store"
)

type cli struct {
	out        io.Writer
	configPath string
	timeout    time.Duration
	cfg        *config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "authctl",
		Short:         "CLI de operación del servicio de login social",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "authctl"})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "ruta a config.yaml (env CONFIG_PATH)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "timeout de la operación")

	root.AddCommand(c.migrateCmd(), c.tokenCmd(), c.nickCmd(), c.userCmd())
	return root
}

// withStore abre el store configurado, corre fn y lo cierra.
func (c *cli) withStore(ctx context.Context, fn func(ctx context.Context, conn store.AdapterConnection) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := app.OpenStore(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea el esquema del store configurado (tablas SQL o índices de Mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, conn store.AdapterConnection) error {
				res, err := store.Migrate(ctx, conn)
				if err != nil {
					return err
				}
				logger.S().Infow("migrations done", "driver", conn.Name(), "applied", res.Applied, "skipped", res.Skipped)
				_, err = fmt.Fprintf(c.out, "applied=%v skipped=%v\n", res.Applied, res.Skipped)
				return err
			})
		},
	}
}
