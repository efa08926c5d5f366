package assignment

import (
	"context"
	"errors"

	"github.com/mwalimu/darasa/core"
)

var ErrNotFound = errors.New("assignment not found")

type (
	Repository interface {
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, id int, a Assignment) (Assignment, error)
		DeleteAssignmentByID(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := core.Validate.Struct(na); err != nil {
		return Assignment{}, err
	}
	return svc.repo.CreateAssignment(ctx, svc.build(na))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, na NewAssignment) (Assignment, error) {
	if err := core.Validate.Struct(na); err != nil {
		return Assignment{}, err
	}
	return svc.repo.UpdateAssignment(ctx, id, svc.build(na))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignmentByID(ctx, id)
}

func (svc *Service) build(na NewAssignment) Assignment {
	return Assignment{
		Title:       na.Title,
		Category:    na.Category,
		TotalPoints: na.TotalPoints,
		DueDate:     na.DueDate,
		ClassID:     na.ClassID,
	}
}
