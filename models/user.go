package models

import "time"

// Role distinguishes managers from employees.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

// User represents an account in the system.
// ManagerID is a self reference to the user's manager (nil when unassigned).
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"hashed_password" json:"-"`
	Role         Role      `db:"role" json:"role"`
	ManagerID    *int64    `db:"manager_id" json:"manager_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// ReportsTo reports whether the user's manager reference points at managerID.
func (u *User) ReportsTo(managerID int64) bool {
	return u != nil && u.ManagerID != nil && *u.ManagerID == managerID
}
