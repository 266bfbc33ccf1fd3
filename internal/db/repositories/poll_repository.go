package repositories

import (
	"errors"

	"speedrun_vote_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type pollRepository struct {
	repository
}

type PollRepository interface {
	Create(request *models.Poll) (*models.Poll, error)
	Update(request *models.Poll) (*models.Poll, error)
	GetOne(pollID string) (*models.Poll, error)
	GetManyUnresolved() ([]*models.Poll, error)
}

func NewPollRepository(db *pg.DB) PollRepository {
	return &pollRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *pollRepository) Create(request *models.Poll) (*models.Poll, error) {
	_, err := r.db.Model(request).Insert()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *pollRepository) Update(request *models.Poll) (*models.Poll, error) {
	_, err := r.db.Model(request).WherePK().Update()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *pollRepository) GetOne(pollID string) (*models.Poll, error) {
	poll := &models.Poll{}

	err := r.db.Model(poll).
		Where("id = ?", pollID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return poll, nil
}

// GetManyUnresolved returns polls that still need a close pass: neither
// tallied nor canceled.
func (r *pollRepository) GetManyUnresolved() ([]*models.Poll, error) {
	polls := make([]*models.Poll, 0)

	err := r.db.Model(&polls).
		Where("results IS NULL").
		Where("canceled = ?", false).
		OrderExpr("end_time ASC").
		Select()

	return polls, err
}
