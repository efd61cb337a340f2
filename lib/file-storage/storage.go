package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"site-tools-backend/config"
	"site-tools-backend/lib/apperrors"
	filesdbstorage "site-tools-backend/lib/file-storage/storage"
	filesapimodels "site-tools-backend/models/api/files"
	dbmodels "site-tools-backend/models/db"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	UploadFile(ctx context.Context, fileInfo dbmodels.UploadFileInfo, fileBody []byte) (id string, err error)
	GetFile(ctx context.Context, spaceID, fileID string) (body []byte, rec *dbmodels.FileStorage, err error)
	ListRequestFiles(spaceID, requestID string) ([]filesapimodels.FileView, error)
	DeleteFile(ctx context.Context, spaceID, fileID string) error
	MakeSpaceBucket(ctx context.Context, spaceID string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client, db *gorm.DB) {
	Instance = &impl{
		s3client: s3client,
		store:    filesdbstorage.NewInstance(db),
	}
}

type impl struct {
	s3client *minio.Client
	store    filesdbstorage.Provider
}

func (i impl) UploadFile(ctx context.Context, fileInfo dbmodels.UploadFileInfo, fileBody []byte) (id string, err error) {
	logger := log.
		WithField("space_id", fileInfo.SpaceID).
		WithField("request_id", fileInfo.RequestID).
		WithField("file_name", fileInfo.FileName)
	if err := i.MakeSpaceBucket(ctx, fileInfo.SpaceID); err != nil {
		logger.WithError(err).Error("ошибка создания бакета пространства")
		return "", err
	}
	rec := dbmodels.FileStorage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: fileInfo.SpaceID,
		},
		Name:        fileInfo.FileName,
		RequestID:   fileInfo.RequestID,
		Type:        fileInfo.FileType,
		ContentType: fileInfo.ContentType,
	}
	if fileInfo.IsUniqueByName {
		// повторная загрузка файла с тем же именем заменяет прежнее содержимое
		existingID, err := i.store.GetFileIDByName(fileInfo.RequestID, fileInfo.FileType, fileInfo.FileName)
		if err != nil {
			logger.WithError(err).Error("ошибка поиска файла по имени")
			return "", err
		}
		rec.ID = existingID
	}
	id, err = i.store.SaveFile(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения данных о файле")
		return "", err
	}
	contentType := fileInfo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = i.s3client.PutObject(ctx, i.getSpaceBucketName(fileInfo.SpaceID), id,
		bytes.NewReader(fileBody), int64(len(fileBody)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки файла в S3")
		return "", errors.Wrap(err, "ошибка загрузки файла в S3")
	}
	return id, nil
}

func (i impl) GetFile(ctx context.Context, spaceID, fileID string) (body []byte, rec *dbmodels.FileStorage, err error) {
	logger := log.
		WithField("space_id", spaceID).
		WithField("file_id", fileID)
	rec, err = i.store.GetByID(spaceID, fileID)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска данных о файле")
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apperrors.NotFoundf("файл %v не найден", fileID)
	}
	object, err := i.s3client.GetObject(ctx, i.getSpaceBucketName(spaceID), fileID, minio.GetObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("ошибка получения файла из S3")
		return nil, nil, errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer object.Close()
	body, err = io.ReadAll(object)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения файла из S3")
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return body, rec, nil
}

func (i impl) ListRequestFiles(spaceID, requestID string) ([]filesapimodels.FileView, error) {
	list, err := i.store.ListByRequest(spaceID, requestID)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("request_id", requestID).
			WithError(err).
			Error("ошибка получения списка файлов заявки")
		return nil, err
	}
	result := make([]filesapimodels.FileView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) DeleteFile(ctx context.Context, spaceID, fileID string) error {
	logger := log.
		WithField("space_id", spaceID).
		WithField("file_id", fileID)
	rec, err := i.store.GetByID(spaceID, fileID)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска данных о файле")
		return err
	}
	if rec == nil {
		return apperrors.NotFoundf("файл %v не найден", fileID)
	}
	err = i.s3client.RemoveObject(ctx, i.getSpaceBucketName(spaceID), fileID, minio.RemoveObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления файла из S3")
		return errors.Wrap(err, "ошибка удаления файла из S3")
	}
	return i.store.Delete(spaceID, fileID)
}

func (i impl) MakeSpaceBucket(ctx context.Context, spaceID string) error {
	bucketName := i.getSpaceBucketName(spaceID)
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}

func (i impl) getSpaceBucketName(spaceID string) string {
	return strings.ToLower(fmt.Sprintf("%s-%s", config.Conf.S3.BucketName, spaceID))
}
