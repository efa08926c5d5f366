package tablerepo

import (
	"context"

	"github.com/mwalimu/darasa/core/comm"
	"github.com/mwalimu/darasa/core/table"
)

type commRepository struct {
	*entityRepository[comm.Communication]
}

var _ comm.Repository = (*commRepository)(nil)

func NewCommunicationRepository(client table.Client) comm.Repository {
	return &commRepository{newEntityRepository[comm.Communication](client, comm.Schema, "communication", comm.ErrNotFound)}
}

func (r *commRepository) QueryAllCommunications(ctx context.Context) ([]comm.Communication, error) {
	return r.list(ctx, nil, nil)
}

func (r *commRepository) QueryCommunicationsByStudent(ctx context.Context, studentID int) ([]comm.Communication, error) {
	where := []table.Filter{{Field: "student_id_c", Operator: table.OpEqualTo, Values: []interface{}{studentID}}}
	order := []table.Ordering{{Field: "date_c", Descending: true}}
	return r.list(ctx, where, order)
}

func (r *commRepository) GetCommunicationByID(ctx context.Context, id int) (comm.Communication, error) {
	return r.get(ctx, id)
}

func (r *commRepository) CreateCommunication(ctx context.Context, c comm.Communication) (comm.Communication, error) {
	return r.create(ctx, c)
}

func (r *commRepository) UpdateCommunication(ctx context.Context, id int, c comm.Communication) (comm.Communication, error) {
	return r.update(ctx, id, c)
}

func (r *commRepository) DeleteCommunicationByID(ctx context.Context, id int) error {
	return r.delete(ctx, id)
}
