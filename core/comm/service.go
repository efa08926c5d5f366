package comm

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/mwalimu/darasa/core"
)

var ErrNotFound = errors.New("communication not found")

type (
	Repository interface {
		QueryAllCommunications(ctx context.Context) ([]Communication, error)
		// QueryCommunicationsByStudent returns the student's log, most
		// recent date first.
		QueryCommunicationsByStudent(ctx context.Context, studentID int) ([]Communication, error)
		GetCommunicationByID(ctx context.Context, id int) (Communication, error)
		CreateCommunication(ctx context.Context, c Communication) (Communication, error)
		UpdateCommunication(ctx context.Context, id int, c Communication) (Communication, error)
		DeleteCommunicationByID(ctx context.Context, id int) error
	}

	Service struct {
		repo       Repository
		mailSvc    core.EmailService
		followUpTo mail.Address
	}
)

func NewService(repo Repository, mailSvc core.EmailService, followUpTo mail.Address) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, followUpTo: followUpTo}
}

func (svc *Service) Create(ctx context.Context, nc NewCommunication) (Communication, error) {
	if err := core.Validate.Struct(nc); err != nil {
		return Communication{}, err
	}
	c := svc.build(nc)
	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	c, err := svc.repo.CreateCommunication(ctx, c)
	if err != nil {
		return Communication{}, err
	}
	if c.FollowUpRequired {
		svc.sendFollowUpReminder(c)
	}
	return c, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Communication, error) {
	return svc.repo.QueryAllCommunications(ctx)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Communication, error) {
	if studentID <= 0 {
		return nil, core.NewArgumentError("invalid student id")
	}
	return svc.repo.QueryCommunicationsByStudent(ctx, studentID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Communication, error) {
	return svc.repo.GetCommunicationByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, nc NewCommunication) (Communication, error) {
	if err := core.Validate.Struct(nc); err != nil {
		return Communication{}, err
	}
	return svc.repo.UpdateCommunication(ctx, id, svc.build(nc))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteCommunicationByID(ctx, id)
}

func (svc *Service) sendFollowUpReminder(c Communication) {
	if svc.mailSvc == nil {
		return
	}
	body := fmt.Sprintf(
		"A follow-up is required for the %s communication %q logged on %s (student #%d).",
		c.Type, c.Subject, c.Date, c.StudentID,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{svc.followUpTo},
		Subject: "Follow-up needed: " + c.Subject,
		BodyStr: body,
	})
}

func (svc *Service) build(nc NewCommunication) Communication {
	return Communication{
		StudentID:        nc.StudentID,
		TeacherID:        nc.TeacherID,
		TeacherName:      nc.TeacherName,
		Date:             nc.Date,
		Type:             nc.Type,
		Subject:          nc.Subject,
		Notes:            nc.Notes,
		FollowUpRequired: nc.FollowUpRequired,
	}
}
