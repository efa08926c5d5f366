package tablerepo

import (
	"context"

	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/table"
)

type assignmentRepository struct {
	*entityRepository[assignment.Assignment]
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(client table.Client) assignment.Repository {
	return &assignmentRepository{newEntityRepository[assignment.Assignment](client, assignment.Schema, "assignment", assignment.ErrNotFound)}
}

func (r *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return r.list(ctx, nil, nil)
}

func (r *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	return r.get(ctx, id)
}

func (r *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return r.create(ctx, a)
}

func (r *assignmentRepository) UpdateAssignment(ctx context.Context, id int, a assignment.Assignment) (assignment.Assignment, error) {
	return r.update(ctx, id, a)
}

func (r *assignmentRepository) DeleteAssignmentByID(ctx context.Context, id int) error {
	return r.delete(ctx, id)
}
