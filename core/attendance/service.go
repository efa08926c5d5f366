package attendance

import (
	"context"
	"errors"
	"sync"

	"github.com/mwalimu/darasa/core"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		QueryAllAttendance(ctx context.Context) ([]Attendance, error)
		QueryAttendanceByStudent(ctx context.Context, studentID int) ([]Attendance, error)
		// QueryAttendanceByDate matches on the calendar day, ignoring any
		// time-of-day component.
		QueryAttendanceByDate(ctx context.Context, date string) ([]Attendance, error)
		GetAttendanceByID(ctx context.Context, id int) (Attendance, error)
		CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
		UpdateAttendance(ctx context.Context, id int, a Attendance) (Attendance, error)
		DeleteAttendanceByID(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAttendance) (Attendance, error) {
	if err := core.Validate.Struct(na); err != nil {
		return Attendance{}, err
	}
	return svc.repo.CreateAttendance(ctx, svc.build(na))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Attendance, error) {
	return svc.repo.QueryAllAttendance(ctx)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Attendance, error) {
	if studentID <= 0 {
		return nil, core.NewArgumentError("invalid student id")
	}
	return svc.repo.QueryAttendanceByStudent(ctx, studentID)
}

func (svc *Service) QueryByDate(ctx context.Context, date string) ([]Attendance, error) {
	if date == "" {
		return nil, core.NewArgumentError("date is required")
	}
	return svc.repo.QueryAttendanceByDate(ctx, date)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Attendance, error) {
	return svc.repo.GetAttendanceByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, na NewAttendance) (Attendance, error) {
	if err := core.Validate.Struct(na); err != nil {
		return Attendance{}, err
	}
	return svc.repo.UpdateAttendance(ctx, id, svc.build(na))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAttendanceByID(ctx, id)
}

// MarkAll records the given status for every student on one date. The
// creates are issued concurrently and awaited together; there is no
// atomicity across the set and no ordering between the calls. All calls
// run to completion even when some fail; the first failure is returned
// alongside the records that were created.
func (svc *Service) MarkAll(ctx context.Context, date, status string, studentIDs []int) ([]Attendance, error) {
	if err := core.Validate.Struct(NewAttendance{StudentID: 1, Date: date, Status: status}); err != nil {
		return nil, err
	}
	for _, id := range studentIDs {
		if id <= 0 {
			return nil, core.NewArgumentError("invalid student id")
		}
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		created  = make([]Attendance, 0, len(studentIDs))
		firstErr error
	)
	for _, id := range studentIDs {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			att, err := svc.repo.CreateAttendance(ctx, Attendance{StudentID: id, Date: date, Status: status})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			created = append(created, att)
		}()
	}
	wg.Wait()
	return created, firstErr
}

func (svc *Service) build(na NewAttendance) Attendance {
	return Attendance{
		StudentID: na.StudentID,
		Date:      na.Date,
		Status:    na.Status,
		Reason:    na.Reason,
	}
}
