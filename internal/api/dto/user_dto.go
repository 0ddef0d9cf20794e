package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// UserUpdateRequest is a typed partial update; absent fields stay unchanged.
type UserUpdateRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,len=10,numeric"`
	DepartmentID *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	JobPosition  *string `json:"job_position,omitempty"`
	EmployeeType *string `json:"employee_type,omitempty"`
	Company      *string `json:"company,omitempty"`
	WorkLocation *string `json:"work_location,omitempty"`
}

// ToDomain maps the request onto the domain update struct.
func (r UserUpdateRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Name:         r.Name,
		Phone:        r.Phone,
		DepartmentID: r.DepartmentID,
		JobPosition:  r.JobPosition,
		EmployeeType: r.EmployeeType,
		Company:      r.Company,
		WorkLocation: r.WorkLocation,
	}
}

// UserResponse is the wire shape for accounts. The password hash never
// leaves the service.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	DepartmentID *string   `json:"department_id,omitempty"`
	JobPosition  string    `json:"job_position,omitempty"`
	EmployeeType string    `json:"employee_type,omitempty"`
	Company      string    `json:"company,omitempty"`
	WorkLocation string    `json:"work_location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		Phone:        user.Phone,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
		JobPosition:  user.JobPosition,
		EmployeeType: user.EmployeeType,
		Company:      user.Company,
		WorkLocation: user.WorkLocation,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of domain users.
func NewUserListResponse(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
