package repositories

import (
	"errors"

	"speedrun_vote_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type userRepository struct {
	repository
}

type UserRepository interface {
	Create(request *models.User) (*models.User, error)
	Update(request *models.User) (*models.User, error)
	GetOne(discordID string) (*models.User, error)
}

func NewUserRepository(db *pg.DB) UserRepository {
	return &userRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *userRepository) Create(request *models.User) (*models.User, error) {
	_, err := r.db.Model(request).Insert()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *userRepository) Update(request *models.User) (*models.User, error) {
	_, err := r.db.Model(request).WherePK().Update()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *userRepository) GetOne(discordID string) (*models.User, error) {
	user := &models.User{}

	err := r.db.Model(user).
		Where("id = ?", discordID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
