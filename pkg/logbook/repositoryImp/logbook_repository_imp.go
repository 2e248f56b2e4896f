package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/logbook/repository"
)

type logbookRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LogbookRepository { return &logbookRepo{db} }

func (r *logbookRepo) CreateScouting(l *entities.ScoutingLog) error {
	return r.db.Create(l).Error
}

func (r *logbookRepo) CreateIrrigation(l *entities.IrrigationLog) error {
	return r.db.Create(l).Error
}

func (r *logbookRepo) CreateBrix(s *entities.BrixSample) error {
	return r.db.Create(s).Error
}

func (r *logbookRepo) CreateSpray(l *entities.SprayLog) error {
	return r.db.Create(l).Error
}

func (r *logbookRepo) RecentScouting(farmID string, since time.Time) ([]entities.ScoutingLog, error) {
	var out []entities.ScoutingLog
	err := r.db.Where("farm_id = ? AND observed_at >= ?", farmID, since).
		Order("observed_at ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) RecentIrrigation(farmID string, since time.Time) ([]entities.IrrigationLog, error) {
	var out []entities.IrrigationLog
	err := r.db.Where("farm_id = ? AND irrigated_at >= ?", farmID, since).
		Order("irrigated_at ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) RecentBrix(farmID string, since time.Time) ([]entities.BrixSample, error) {
	var out []entities.BrixSample
	err := r.db.Where("farm_id = ? AND sampled_at >= ?", farmID, since).
		Order("sampled_at ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) RecentSpray(farmID string, since time.Time) ([]entities.SprayLog, error) {
	var out []entities.SprayLog
	err := r.db.Where("farm_id = ? AND sprayed_at >= ?", farmID, since).
		Order("sprayed_at ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) LastScouting(farmID string, n int) ([]entities.ScoutingLog, error) {
	var out []entities.ScoutingLog
	err := r.db.Where("farm_id = ?", farmID).
		Order("observed_at DESC").Limit(n).Find(&out).Error
	return out, err
}

func (r *logbookRepo) LastIrrigation(farmID string, n int) ([]entities.IrrigationLog, error) {
	var out []entities.IrrigationLog
	err := r.db.Where("farm_id = ?", farmID).
		Order("irrigated_at DESC").Limit(n).Find(&out).Error
	return out, err
}

func (r *logbookRepo) LastBrix(farmID string, n int) ([]entities.BrixSample, error) {
	var out []entities.BrixSample
	err := r.db.Where("farm_id = ?", farmID).
		Order("sampled_at DESC").Limit(n).Find(&out).Error
	return out, err
}

func (r *logbookRepo) LastPhotoScouting(farmID string) (*entities.ScoutingLog, error) {
	var l entities.ScoutingLog
	err := r.db.Where("farm_id = ? AND photo_path IS NOT NULL", farmID).
		Order("observed_at DESC").First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
