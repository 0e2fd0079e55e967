// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO users (email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &user.ID, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		now,
		now,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE users
		SET email = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		now,
		user.ID,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	if err := requireAffected(result, "update user", user.ID); err != nil {
		return err
	}

	user.UpdatedAt = now
	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := r.db.Rebind(`
		UPDATE users
		SET password_hash = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return requireAffected(result, "update password", id)
}

// Delete fails with ErrConflict while orders still reference the user.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM users WHERE id = ?`),
		id,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("user %d still has orders: %w", id, core.ErrConflict)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	return requireAffected(result, "delete user", id)
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM users WHERE id = ?`)

	var n int
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return n > 0, nil
}

func (r *repository) CountAdmins(ctx context.Context) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM users WHERE role = ?`)

	var n int
	if err := r.db.GetContext(ctx, &n, query, RoleAdmin); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}

	return n, nil
}

func requireAffected(result sql.Result, op string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: user %d: %w", op, id, core.ErrNotFound)
	}

	return nil
}
