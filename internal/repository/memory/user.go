package memory

import (
	"context"
	"strings"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.withLeaderGroupLocked(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedKeys(r.store.users) {
		if u := r.store.users[id]; strings.EqualFold(u.Email, email) {
			return r.withLeaderGroupLocked(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// withLeaderGroupLocked resolves the group a leader runs from the group's leader account.
func (r *userRepository) withLeaderGroupLocked(u user.User) user.User {
	if u.GroupID != nil || u.Role != user.RoleGroupLeader || u.AccountNumber == nil {
		return u
	}
	for _, id := range sortedKeys(r.store.groups) {
		g := r.store.groups[id]
		if g.LeaderAccount != nil && *g.LeaderAccount == *u.AccountNumber {
			gid := g.ID
			u.GroupID = &gid
			break
		}
	}
	return u
}
