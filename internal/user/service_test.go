package user

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User)}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = f.nextID
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestService(repo *fakeRepo) Service {
	return NewService(repo, zerolog.Nop())
}

func TestCreateAndCheck(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	u, err := svc.Create(ctx, &User{Name: "alice", Email: "alice@mail.test"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	assert.NoError(t, svc.Check(ctx, u.ID))

	err = svc.Check(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "user id = 99 is not found")
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(ctx, &User{Name: "alice", Email: "alice@mail.test"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &User{Name: "bob", Email: "alice@mail.test"})
	assert.True(t, errors.Is(err, ErrEmailAlreadyUsed))
}

func TestUpdateMerge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	u, err := svc.Create(ctx, &User{Name: "alice", Email: "alice@mail.test"})
	require.NoError(t, err)

	t.Run("name only", func(t *testing.T) {
		name := "alice b"
		updated, err := svc.Update(ctx, u.ID, Patch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "alice b", updated.Name)
		assert.Equal(t, "alice@mail.test", updated.Email)
	})

	t.Run("email only", func(t *testing.T) {
		email := "alice.b@mail.test"
		updated, err := svc.Update(ctx, u.ID, Patch{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "alice b", updated.Name)
		assert.Equal(t, "alice.b@mail.test", updated.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		name := "ghost"
		_, err := svc.Update(ctx, 99, Patch{Name: &name})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	u, err := svc.Create(ctx, &User{Name: "alice", Email: "alice@mail.test"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, u.ID), ErrNotFound))
}
