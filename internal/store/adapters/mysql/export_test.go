package mysql

import "context"

// TruncateUsers vacía app_user entre casos de la suite de contrato.
func (c *mysqlConnection) TruncateUsers(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `TRUNCATE TABLE app_user`)
	return err
}

// NormalizeDSN expone normalizeDSN a los tests externos.
var NormalizeDSN = normalizeDSN
