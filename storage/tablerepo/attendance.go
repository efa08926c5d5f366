package tablerepo

import (
	"context"

	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/table"
)

type attendanceRepository struct {
	*entityRepository[attendance.Attendance]
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(client table.Client) attendance.Repository {
	return &attendanceRepository{newEntityRepository[attendance.Attendance](client, attendance.Schema, "attendance record", attendance.ErrNotFound)}
}

func (r *attendanceRepository) QueryAllAttendance(ctx context.Context) ([]attendance.Attendance, error) {
	return r.list(ctx, nil, nil)
}

func (r *attendanceRepository) QueryAttendanceByStudent(ctx context.Context, studentID int) ([]attendance.Attendance, error) {
	where := []table.Filter{{Field: "student_id_c", Operator: table.OpEqualTo, Values: []interface{}{studentID}}}
	return r.list(ctx, where, nil)
}

// QueryAttendanceByDate filters locally: the boundary's EqualTo is an
// exact string match, and stored dates may carry a time component.
func (r *attendanceRepository) QueryAttendanceByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	all, err := r.list(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	matched := make([]attendance.Attendance, 0, len(all))
	for _, a := range all {
		if sameDay(a.Date, date) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r *attendanceRepository) GetAttendanceByID(ctx context.Context, id int) (attendance.Attendance, error) {
	return r.get(ctx, id)
}

func (r *attendanceRepository) CreateAttendance(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return r.create(ctx, a)
}

func (r *attendanceRepository) UpdateAttendance(ctx context.Context, id int, a attendance.Attendance) (attendance.Attendance, error) {
	return r.update(ctx, id, a)
}

func (r *attendanceRepository) DeleteAttendanceByID(ctx context.Context, id int) error {
	return r.delete(ctx, id)
}
