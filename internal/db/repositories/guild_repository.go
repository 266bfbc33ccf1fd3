package repositories

import (
	"errors"

	"speedrun_vote_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type guildRepository struct {
	repository
}

type GuildRepository interface {
	Create(request *models.Guild) (*models.Guild, error)
	Update(request *models.Guild) (*models.Guild, error)
	GetOne(guildID string) (*models.Guild, error)
	GetMany() ([]*models.Guild, error)
}

func NewGuildRepository(db *pg.DB) GuildRepository {
	return &guildRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *guildRepository) Create(request *models.Guild) (*models.Guild, error) {
	_, err := r.db.Model(request).Insert()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *guildRepository) Update(request *models.Guild) (*models.Guild, error) {
	_, err := r.db.Model(request).WherePK().Update()
	if err != nil {
		return nil, err
	}

	return r.GetOne(request.ID)
}

func (r *guildRepository) GetOne(guildID string) (*models.Guild, error) {
	guild := &models.Guild{}

	err := r.db.Model(guild).
		Where("id = ?", guildID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return guild, nil
}

func (r *guildRepository) GetMany() ([]*models.Guild, error) {
	guilds := make([]*models.Guild, 0)

	err := r.db.Model(&guilds).
		Select()

	return guilds, err
}
