package domain

import "time"

// User is the domain model for directory accounts. Username doubles as the
// login identifier and the token subject.
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Phone        string
	Role         Role
	DepartmentID *string
	JobPosition  string
	EmployeeType string
	Company      string
	WorkLocation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate is a typed partial update. Only the fields listed here are
// mutable; nil means leave unchanged. Queries are built from this fixed
// whitelist, never from request keys.
type UserUpdate struct {
	Name         *string
	Phone        *string
	DepartmentID *string
	JobPosition  *string
	EmployeeType *string
	Company      *string
	WorkLocation *string
}

// Empty reports whether the update carries no changes.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.DepartmentID == nil &&
		u.JobPosition == nil && u.EmployeeType == nil && u.Company == nil &&
		u.WorkLocation == nil
}
