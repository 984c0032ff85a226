package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// TruncateUsers vacía la colección entre casos de la suite de contrato.
func (c *mongoConnection) TruncateUsers(ctx context.Context) error {
	_, err := c.users.DeleteMany(ctx, bson.D{})
	return err
}
