package grade

import (
	"context"
	"errors"

	"github.com/mwalimu/darasa/core"
)

var ErrNotFound = errors.New("grade not found")

type (
	Repository interface {
		QueryAllGrades(ctx context.Context) ([]Grade, error)
		QueryGradesByStudent(ctx context.Context, studentID int) ([]Grade, error)
		QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, id int, g Grade) (Grade, error)
		DeleteGradeByID(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := core.Validate.Struct(ng); err != nil {
		return Grade{}, err
	}
	return svc.repo.CreateGrade(ctx, svc.build(ng))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAllGrades(ctx)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Grade, error) {
	if studentID <= 0 {
		return nil, core.NewArgumentError("invalid student id")
	}
	return svc.repo.QueryGradesByStudent(ctx, studentID)
}

func (svc *Service) QueryByAssignment(ctx context.Context, assignmentID int) ([]Grade, error) {
	if assignmentID <= 0 {
		return nil, core.NewArgumentError("invalid assignment id")
	}
	return svc.repo.QueryGradesByAssignment(ctx, assignmentID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ng NewGrade) (Grade, error) {
	if err := core.Validate.Struct(ng); err != nil {
		return Grade{}, err
	}
	return svc.repo.UpdateGrade(ctx, id, svc.build(ng))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteGradeByID(ctx, id)
}

func (svc *Service) build(ng NewGrade) Grade {
	return Grade{
		StudentID:     ng.StudentID,
		AssignmentID:  ng.AssignmentID,
		Score:         ng.Score,
		SubmittedDate: ng.SubmittedDate,
		Comments:      ng.Comments,
	}
}
