package tablerepo

import (
	"context"

	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/table"
)

type gradeRepository struct {
	*entityRepository[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(client table.Client) grade.Repository {
	return &gradeRepository{newEntityRepository[grade.Grade](client, grade.Schema, "grade", grade.ErrNotFound)}
}

func (r *gradeRepository) QueryAllGrades(ctx context.Context) ([]grade.Grade, error) {
	return r.list(ctx, nil, nil)
}

// QueryGradesByStudent pushes the equality filter down to the boundary to
// avoid transferring the full table.
func (r *gradeRepository) QueryGradesByStudent(ctx context.Context, studentID int) ([]grade.Grade, error) {
	where := []table.Filter{{Field: "student_id_c", Operator: table.OpEqualTo, Values: []interface{}{studentID}}}
	return r.list(ctx, where, nil)
}

func (r *gradeRepository) QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]grade.Grade, error) {
	where := []table.Filter{{Field: "assignment_id_c", Operator: table.OpEqualTo, Values: []interface{}{assignmentID}}}
	return r.list(ctx, where, nil)
}

func (r *gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	return r.get(ctx, id)
}

func (r *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	return r.create(ctx, g)
}

func (r *gradeRepository) UpdateGrade(ctx context.Context, id int, g grade.Grade) (grade.Grade, error) {
	return r.update(ctx, id, g)
}

func (r *gradeRepository) DeleteGradeByID(ctx context.Context, id int) error {
	return r.delete(ctx, id)
}
