package student

import (
	"context"
	"errors"

	"github.com/mwalimu/darasa/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		CreateStudent(ctx context.Context, s Student) (Student, error)
		// UpdateStudent replaces the full record.
		UpdateStudent(ctx context.Context, id int, s Student) (Student, error)
		DeleteStudentByID(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := core.Validate.Struct(ns); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, svc.build(ns))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ns NewStudent) (Student, error) {
	if err := core.Validate.Struct(ns); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, id, svc.build(ns))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudentByID(ctx, id)
}

func (svc *Service) build(ns NewStudent) Student {
	status := ns.Status
	if status == "" {
		status = StatusActive
	}
	return Student{
		FirstName:      ns.FirstName,
		LastName:       ns.LastName,
		Grade:          ns.Grade,
		DateOfBirth:    ns.DateOfBirth,
		Email:          ns.Email,
		Phone:          ns.Phone,
		ParentName:     ns.ParentName,
		ParentEmail:    ns.ParentEmail,
		ParentPhone:    ns.ParentPhone,
		Address:        ns.Address,
		EnrollmentDate: ns.EnrollmentDate,
		Status:         status,
	}
}
