package tablerepo

import (
	"context"

	"github.com/mwalimu/darasa/core/student"
	"github.com/mwalimu/darasa/core/table"
)

type studentRepository struct {
	*entityRepository[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(client table.Client) student.Repository {
	return &studentRepository{newEntityRepository[student.Student](client, student.Schema, "student", student.ErrNotFound)}
}

func (r *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return r.list(ctx, nil, nil)
}

func (r *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	return r.get(ctx, id)
}

func (r *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	return r.create(ctx, s)
}

func (r *studentRepository) UpdateStudent(ctx context.Context, id int, s student.Student) (student.Student, error) {
	return r.update(ctx, id, s)
}

func (r *studentRepository) DeleteStudentByID(ctx context.Context, id int) error {
	return r.delete(ctx, id)
}
