package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
)

// DepartmentCreateRequest payload for new departments.
type DepartmentCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Code        string  `json:"code" validate:"required,min=1,max=20"`
	Description string  `json:"description,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty" validate:"omitempty,uuid"`
	Location    string  `json:"location" validate:"required,max=225"`
	Phone       string  `json:"phone" validate:"required,len=10,numeric"`
	Email       string  `json:"email" validate:"required,email"`
}

// ToInput maps the request onto the service input.
func (r DepartmentCreateRequest) ToInput() service.DepartmentCreateInput {
	return service.DepartmentCreateInput{
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		ManagerID:   r.ManagerID,
		Location:    r.Location,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

// DepartmentUpdateRequest is a typed partial update; code is immutable.
type DepartmentUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty" validate:"omitempty,uuid"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=225"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,len=10,numeric"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ToDomain maps the request onto the domain update struct.
func (r DepartmentUpdateRequest) ToDomain() domain.DepartmentUpdate {
	return domain.DepartmentUpdate{
		Name:        r.Name,
		Description: r.Description,
		ManagerID:   r.ManagerID,
		Location:    r.Location,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

// DepartmentResponse is the wire shape for departments.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	ManagerID   *string   `json:"manager_id,omitempty"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Code:        dept.Code,
		Description: dept.Description,
		ManagerID:   dept.ManagerID,
		Location:    dept.Location,
		Phone:       dept.Phone,
		Email:       dept.Email,
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
	}
}

// NewDepartmentListResponse maps a slice of domain departments.
func NewDepartmentListResponse(depts []domain.Department) []DepartmentResponse {
	result := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, NewDepartmentResponse(&depts[i]))
	}
	return result
}
