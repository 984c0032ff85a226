package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/socialauth/internal/nick"
	"github.com/dropDatabas3/socialauth/internal/store"
)

func (c *cli) nickCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "nick", Short: "Operaciones sobre nicks"}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <nick>",
		Short: "Indica si el nick está disponible (libre y sin palabras prohibidas)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			banned, err := nick.LoadBannedWords(c.cfg.Nick.BannedWordsPath)
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, conn store.AdapterConnection) error {
				ok, err := nick.NewValidator(conn.Users(), banned).Validate(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, ok)
				return err
			})
		},
	})
	return cmd
}
