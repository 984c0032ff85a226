package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/socialauth/internal/app"
)

func (c *cli) tokenCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Emitir o verificar tokens de sesión"}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue <externalId>",
		Short: "Emite un token para el id externo dado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := app.NewIssuer(c.cfg)
			if err != nil {
				return err
			}
			tok, exp, err := iss.Issue(args[0])
			if err != nil {
				return err
			}
			return c.printJSON(map[string]any{"jwt": tok, "expiresAt": exp.UTC().Format(time.RFC3339)})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <token>",
		Short: "Verifica un token y muestra su subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := app.NewIssuer(c.cfg)
			if err != nil {
				return err
			}
			sub, err := iss.Verify(args[0])
			if err != nil {
				return fmt.Errorf("token inválido: %w", err)
			}
			return c.printJSON(map[string]any{"valid": true, "socialId": sub})
		},
	})
	return cmd
}
