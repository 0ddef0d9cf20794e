package domain

import "time"

// Department represents an organizational unit. Code is unique across the
// directory.
type Department struct {
	ID          string
	Name        string
	Code        string
	Description string
	ManagerID   *string
	Location    string
	Phone       string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DepartmentUpdate is a typed partial update over the mutable columns. Code
// is immutable after creation.
type DepartmentUpdate struct {
	Name        *string
	Description *string
	ManagerID   *string
	Location    *string
	Phone       *string
	Email       *string
}

// Empty reports whether the update carries no changes.
func (d DepartmentUpdate) Empty() bool {
	return d.Name == nil && d.Description == nil && d.ManagerID == nil &&
		d.Location == nil && d.Phone == nil && d.Email == nil
}
