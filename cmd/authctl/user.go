package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/store"
)

func (c *cli) userCmd() *cobra.Command {
	var externalID, nickName, email, provider string

	find := &cobra.Command{
		Use:   "find",
		Short: "Busca usuarios por --external-id, --nick o --email + --provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, conn store.AdapterConnection) error {
				users := conn.Users()
				switch {
				case externalID != "":
					if provider != "" {
						p, err := repository.ParseProvider(provider)
						if err != nil {
							return err
						}
						u, err := users.FindByProviderID(ctx, p, externalID)
						if err != nil {
							return err
						}
						return c.printJSON(u)
					}
					list, err := users.FindByExternalID(ctx, externalID)
					if err != nil {
						return err
					}
					if len(list) == 0 {
						return repository.ErrNotFound
					}
					return c.printJSON(list)
				case nickName != "":
					u, err := users.FindByNick(ctx, nickName)
					if err != nil {
						return err
					}
					return c.printJSON(u)
				case email != "":
					if provider == "" {
						return errors.New("--email requiere --provider")
					}
					p, err := repository.ParseProvider(provider)
					if err != nil {
						return err
					}
					u, err := users.FindByEmailAndProvider(ctx, email, p)
					if err != nil {
						return err
					}
					return c.printJSON(u)
				}
				return errors.New("indicar --external-id, --nick o --email")
			})
		},
	}
	find.Flags().StringVar(&externalID, "external-id", "", "id externo del proveedor")
	find.Flags().StringVar(&nickName, "nick", "", "nick exacto (case-sensitive)")
	find.Flags().StringVar(&email, "email", "", "email (requiere --provider)")
	find.Flags().StringVar(&provider, "provider", "", "kakao|google|apple")

	cmd := &cobra.Command{Use: "user", Short: "Consultas de usuarios"}
	cmd.AddCommand(find)
	return cmd
}
