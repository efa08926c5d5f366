package attendance

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwalimu/darasa/core"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  int
	created []Attendance
	failFor map[int]error
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) QueryAllAttendance(context.Context) ([]Attendance, error) { return nil, nil }
func (r *fakeRepo) QueryAttendanceByStudent(context.Context, int) ([]Attendance, error) {
	return nil, nil
}
func (r *fakeRepo) QueryAttendanceByDate(context.Context, string) ([]Attendance, error) {
	return nil, nil
}
func (r *fakeRepo) GetAttendanceByID(context.Context, int) (Attendance, error) {
	return Attendance{}, ErrNotFound
}
func (r *fakeRepo) CreateAttendance(_ context.Context, a Attendance) (Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failFor[a.StudentID]; err != nil {
		return Attendance{}, err
	}
	r.nextID++
	a.ID = r.nextID
	r.created = append(r.created, a)
	return a, nil
}
func (r *fakeRepo) UpdateAttendance(_ context.Context, id int, a Attendance) (Attendance, error) {
	a.ID = id
	return a, nil
}
func (r *fakeRepo) DeleteAttendanceByID(context.Context, int) error { return nil }

func TestMarkAll(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.MarkAll(context.Background(), "2024-02-10", StatusPresent, []int{1, 2, 3})
	assert.NoError(t, err)
	assert.Len(t, created, 3)

	gotIDs := make([]int, 0, len(created))
	for _, a := range created {
		assert.Equal(t, "2024-02-10", a.Date)
		assert.Equal(t, StatusPresent, a.Status)
		gotIDs = append(gotIDs, a.StudentID)
	}
	sort.Ints(gotIDs)
	assert.Equal(t, []int{1, 2, 3}, gotIDs)
}

func TestMarkAllPartialFailure(t *testing.T) {
	repo := &fakeRepo{failFor: map[int]error{2: ErrNotFound}}
	svc := NewService(repo)

	created, err := svc.MarkAll(context.Background(), "2024-02-10", StatusAbsent, []int{1, 2, 3})
	// all students are attempted; the failure is reported alongside the
	// records that were created
	assert.Equal(t, ErrNotFound, err)
	assert.Len(t, created, 2)
}

func TestMarkAllValidatesInput(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.MarkAll(ctx, "02/10/2024", StatusPresent, []int{1})
	assert.Error(t, err, "malformed date must be rejected")

	_, err = svc.MarkAll(ctx, "2024-02-10", "vanished", []int{1})
	assert.Error(t, err, "unknown status must be rejected")
}

func TestMarkAllRejectsNonPositiveStudentIDs(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	for _, ids := range [][]int{{1, 0, 3}, {-1}} {
		_, err := svc.MarkAll(context.Background(), "2024-02-10", StatusPresent, ids)
		var argErr *core.ArgumentError
		assert.True(t, errors.As(err, &argErr), "ids %v: want ArgumentError, got %v", ids, err)
	}
	assert.Empty(t, repo.created, "no create may be issued for an invalid roster")
}

func TestMarkAllEmptyRoster(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.MarkAll(context.Background(), "2024-02-10", StatusPresent, nil)
	assert.NoError(t, err)
	assert.Empty(t, created)
}
