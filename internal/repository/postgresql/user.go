package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Group leaders are linked to their group through the group's leader account
// number; students carry group_id directly.
const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.account_number,
	       COALESCE(u.group_id, g.id), u.created_at, u.updated_at
	FROM users u
	LEFT JOIN groups g ON u.role = 'group_leader' AND g.leader_account = u.account_number
`

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var found user.User
	err := q.QueryRow(ctx, userSelect+where+" LIMIT 1", arg).Scan(
		&found.ID,
		&found.Name,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.AccountNumber,
		&found.GroupID,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}

	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, " WHERE u.id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, " WHERE u.email = $1", email)
}
