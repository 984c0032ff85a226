// Package storetest contiene la suite de contrato que todo UserRepository debe pasar.
// La corren el adapter memory siempre y los adapters SQL/Mongo cuando hay DSN.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

// RunUserRepository corre la suite. newRepo debe devolver un repositorio vacío.
func RunUserRepository(t *testing.T, newRepo func(t *testing.T) repository.UserRepository) {
	t.Run("CreateAndFind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		u, err := repo.Create(ctx, repository.CreateUserInput{
			ExternalID: "123456789", Name: "테스트이름", Email: "test@test.com",
			Nick: "Test", Provider: repository.ProviderKakao, CreatedAt: created,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.True(t, u.CreatedAt.Equal(created))

		got, err := repo.FindByProviderID(ctx, repository.ProviderKakao, "123456789")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "테스트이름", got.Name)

		got, err = repo.FindByNick(ctx, "Test")
		require.NoError(t, err)
		assert.Equal(t, "123456789", got.ExternalID)

		got, err = repo.FindByEmailAndProvider(ctx, "test@test.com", repository.ProviderKakao)
		require.NoError(t, err)
		assert.Equal(t, "Test", got.Nick)

		list, err := repo.FindByExternalID(ctx, "123456789")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, repository.ProviderKakao, list[0].Provider)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.FindByNick(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repo.FindByProviderID(ctx, repository.ProviderGoogle, "x")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repo.FindByEmailAndProvider(ctx, "a@b.c", repository.ProviderApple)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		list, err := repo.FindByExternalID(ctx, "x")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("NickIsCaseSensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.Create(ctx, in("1", "Nick", repository.ProviderKakao))
		require.NoError(t, err)

		_, err = repo.FindByNick(ctx, "nick")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("SameExternalIDAcrossProviders", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.Create(ctx, in("42", "a", repository.ProviderKakao))
		require.NoError(t, err)
		_, err = repo.Create(ctx, in("42", "b", repository.ProviderGoogle))
		require.NoError(t, err)

		list, err := repo.FindByExternalID(ctx, "42")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Conflicts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.Create(ctx, in("1", "dup", repository.ProviderKakao))
		require.NoError(t, err)

		_, err = repo.Create(ctx, in("2", "dup", repository.ProviderGoogle))
		assert.ErrorIs(t, err, repository.ErrConflict, "nick")

		_, err = repo.Create(ctx, in("1", "other", repository.ProviderKakao))
		assert.ErrorIs(t, err, repository.ErrConflict, "externalId+provider")
	})

	t.Run("ConcurrentSameNick", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repo.Create(ctx, in(string(rune('a'+i)), "race", repository.ProviderGoogle))
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, repository.ErrConflict)
		}
		assert.Equal(t, 1, ok)
	})
}

func in(externalID, nick string, p repository.Provider) repository.CreateUserInput {
	return repository.CreateUserInput{
		ExternalID: externalID,
		Name:       "name-" + nick,
		Email:      externalID + "@example.com",
		Nick:       nick,
		Provider:   p,
	}
}
