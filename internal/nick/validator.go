// Package nick valida la disponibilidad de un nickname: que nadie lo use
// y que no contenga palabras prohibidas.
package nick

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// Finder es la parte del UserRepository que necesita el validador.
type Finder interface {
	FindByNick(ctx context.Context, nick string) (*repository.User, error)
}

type Validator struct {
	users  Finder
	banned *BannedWords
}

func NewValidator(users Finder, banned *BannedWords) *Validator {
	if banned == nil {
		banned = NewBannedWords()
	}
	return &Validator{users: users, banned: banned}
}

// Validate devuelve true si el nick está libre y no contiene palabras prohibidas.
// Es una consulta: el insert en el store sigue siendo la garantía de unicidad.
func (v *Validator) Validate(ctx context.Context, nick string) (bool, error) {
	if v.banned.Contains(nick) {
		logger.From(ctx).Debug("nick rejected by banned words", logger.Component("nick"), logger.Nick(nick))
		return false, nil
	}
	_, err := v.users.FindByNick(ctx, nick)
	switch {
	case err == nil:
		return false, nil
	case repository.IsNotFound(err):
		return true, nil
	default:
		return false, fmt.Errorf("nick: lookup: %w", err)
	}
}
