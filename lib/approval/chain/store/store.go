package approvalchainstore

import (
	"site-tools-backend/lib/apperrors"
	"site-tools-backend/models"
	approvalapimodels "site-tools-backend/models/api/approval"
	dbmodels "site-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRequest) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.ApprovalRequest, err error)
	List(spaceID string, filter approvalapimodels.ApprovalRequestFilter) (list []dbmodels.ApprovalRequest, err error)
	ApplyDecision(req dbmodels.ApprovalRequest, step *dbmodels.ApprovalStep, expectedVersion int64) error
	Delete(spaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalRequest) (id string, err error) {
	err = i.db.
		Omit("Initiator", "OrgUnit").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.ApprovalRequest, error) {
	rec := dbmodels.ApprovalRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Initiator").
		Preload("OrgUnit").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_steps.step_index ASC").Preload("Approver")
		}).
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

func (i impl) List(spaceID string, filter approvalapimodels.ApprovalRequestFilter) (list []dbmodels.ApprovalRequest, err error) {
	list = []dbmodels.ApprovalRequest{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		Preload("Initiator").
		Preload("OrgUnit").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_steps.step_index ASC").Preload("Approver")
		})
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN ?", filter.Statuses)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.OrgUnitID != "" {
		tx = tx.Where("org_unit_id = ?", filter.OrgUnitID)
	}
	page, limit := filter.GetPage()
	tx = tx.Limit(limit).Offset((page - 1) * limit)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ApplyDecision атомарно фиксирует решение: заявка обновляется только при
// совпадении версии, иначе запись уже изменена параллельным решением и
// вызывающий получает Conflict
func (i impl) ApplyDecision(req dbmodels.ApprovalRequest, step *dbmodels.ApprovalStep, expectedVersion int64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&dbmodels.ApprovalRequest{}).
			Where("id = ?", req.ID).
			Where("space_id = ?", req.SpaceID).
			Where("version = ?", expectedVersion).
			Updates(map[string]interface{}{
				"status":             req.Status,
				"current_step_index": req.CurrentStepIndex,
				"version":            expectedVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			current := dbmodels.ApprovalRequest{}
			err := tx.
				Where("id = ?", req.ID).
				Where("space_id = ?", req.SpaceID).
				First(&current).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFoundf("заявка %v не найдена", req.ID)
				}
				return err
			}
			return apperrors.Conflictf("заявка %v была изменена параллельно (версия %v, ожидалась %v)", req.ID, current.Version, expectedVersion)
		}
		if step != nil {
			err := tx.
				Model(&dbmodels.ApprovalStep{}).
				Where("id = ?", step.ID).
				Updates(map[string]interface{}{
					"status":      step.Status,
					"approver_id": step.ApproverID,
					"decided_at":  step.DecidedAt,
					"comment":     step.Comment,
				}).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.ApprovalRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

// MyTurnFilter отбирает заявки, ожидающие решения пользователя с данной
// ролью: текущий этап требует его роль и ещё не решён
func MyTurnFilter(list []dbmodels.ApprovalRequest, role models.UserRole) []dbmodels.ApprovalRequest {
	result := make([]dbmodels.ApprovalRequest, 0, len(list))
	for _, rec := range list {
		_, step := rec.GetCurrentStep()
		if step == nil {
			continue
		}
		if step.RequiredRole == role && !step.Status.IsDecided() {
			result = append(result, rec)
		}
	}
	return result
}
