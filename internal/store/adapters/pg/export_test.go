package pg

import "context"

// TruncateUsers vacía app_user entre casos de la suite de contrato.
func (c *pgConnection) TruncateUsers(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, `TRUNCATE app_user`)
	return err
}
