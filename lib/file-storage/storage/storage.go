package filesdbstorage

import (
	dbmodels "site-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.FileStorage) (id string, err error)
	GetByID(spaceID, fileID string) (*dbmodels.FileStorage, error)
	ListByRequest(spaceID, requestID string) (list []dbmodels.FileStorage, err error)
	GetFileIDByName(requestID string, fileType dbmodels.FileType, name string) (id string, err error)
	Delete(spaceID, fileID string) error
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, fileID string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
	err := i.db.
		Model(&dbmodels.FileStorage{}).
		Where("space_id = ? AND id = ?", spaceID, fileID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRequest(spaceID, requestID string) (list []dbmodels.FileStorage, err error) {
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where("space_id = ? AND request_id = ?", spaceID, requestID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) GetFileIDByName(requestID string, fileType dbmodels.FileType, name string) (id string, err error) {
	rec := dbmodels.FileStorage{}
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where("request_id = ? AND type = ? AND name = ?", requestID, fileType, name).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Delete(spaceID, fileID string) error {
	return i.db.
		Where("space_id = ? AND id = ?", spaceID, fileID).
		Delete(&dbmodels.FileStorage{}).
		Error
}
