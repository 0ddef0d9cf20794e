package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// DepartmentService coordinates department CRUD and emits domain events.
type DepartmentService struct {
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// NewDepartmentService builds the service.
func NewDepartmentService(departments repository.DepartmentRepository, dispatcher events.Dispatcher) *DepartmentService {
	return &DepartmentService{departments: departments, dispatcher: dispatcher}
}

// DepartmentCreateInput describes a new department.
type DepartmentCreateInput struct {
	Name        string
	Code        string
	Description string
	ManagerID   *string
	Location    string
	Phone       string
	Email       string
}

// Create inserts a department. Code must be unique.
func (s *DepartmentService) Create(ctx context.Context, actor *auth.Principal, input DepartmentCreateInput) (*domain.Department, error) {
	taken, err := s.departments.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("department code already exists", nil)
	}

	dept := &domain.Department{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		ManagerID:   input.ManagerID,
		Location:    input.Location,
		Phone:       input.Phone,
		Email:       input.Email,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("department code already exists", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventDepartmentCreated, actor,
		events.DepartmentCreatedPayload{DepartmentID: dept.ID, Code: dept.Code, Name: dept.Name})
	return dept, nil
}

// Get fetches one department by ID.
func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.departments.GetByID(ctx, id)
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// Update applies a typed partial update.
func (s *DepartmentService) Update(ctx context.Context, actor *auth.Principal, id string, upd domain.DepartmentUpdate) (*domain.Department, error) {
	dept, err := s.departments.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventDepartmentUpdated, actor,
		events.DepartmentUpdatedPayload{DepartmentID: dept.ID})
	return dept, nil
}

// Delete removes a department by ID.
func (s *DepartmentService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventDepartmentDeleted, actor,
		events.DepartmentDeletedPayload{DepartmentID: dept.ID, Code: dept.Code})
	return nil
}

func (s *DepartmentService) publish(ctx context.Context, eventType events.EventType, actor *auth.Principal, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{Username: actor.Username, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
