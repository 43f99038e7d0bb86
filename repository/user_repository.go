package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"feedbackManagement/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, hashed_password, role, manager_id, created_at`

// Create inserts u and returns it with its generated ID.
// CreatedAt defaults to the current time when zero.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (name, email, hashed_password, role, manager_id, created_at) VALUES (?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, string(u.Role), nullableID(u.ManagerID), u.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetByEmail looks a user up by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email))
}

// ListTeam returns the users whose manager is managerID, by name.
func (r *UserRepository) ListTeam(ctx context.Context, managerID int64) ([]models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE manager_id = ? ORDER BY name, id`, managerID)
}

// ListUnassignedEmployees returns employees that have no manager.
func (r *UserRepository) ListUnassignedEmployees(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = ? AND manager_id IS NULL ORDER BY name, id`, string(models.RoleEmployee))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

// SetManager points the user's manager reference at managerID (nil clears it).
func (r *UserRepository) SetManager(ctx context.Context, userID int64, managerID *int64) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE users SET manager_id = ? WHERE id = ?`, nullableID(managerID), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser returns (nil, nil) when the row does not exist.
func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var role string
	var managerID sql.NullInt64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &managerID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.Role(role)
	u.ManagerID = int64Ptr(managerID)
	return &u, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
