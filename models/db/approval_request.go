package dbmodels

import (
	"time"

	"site-tools-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApprovalRequest — заявка на согласование расходов. Последовательность
// этапов фиксируется при создании по типу заявки и далее не меняется.
// Version — версия записи для оптимистичной блокировки: каждое решение
// увеличивает её на единицу, запись обновляется только по совпадению версии.
type ApprovalRequest struct {
	BaseSpaceModel
	Type             models.ApprovalRequestType   `gorm:"type:varchar(50)"`
	Title            string                       `gorm:"type:varchar(255)"`
	Amount           int64
	Category         models.ApprovalCategory      `gorm:"type:varchar(50)"`
	InitiatorID      string                       `gorm:"type:varchar(36)"`
	Initiator        *SpaceUser                   `gorm:"foreignKey:InitiatorID"`
	OrgUnitID        string                       `gorm:"type:varchar(36);index"`
	OrgUnit          *OrgUnit                     `gorm:"foreignKey:OrgUnitID"`
	Status           models.ApprovalRequestStatus `gorm:"type:varchar(20);index"`
	CurrentStepIndex int
	Version          int64
	Steps            []ApprovalStep `gorm:"foreignKey:RequestID"`
}

type ApprovalStep struct {
	BaseSpaceModel
	RequestID    string                    `gorm:"type:varchar(36);index"`
	StepIndex    int
	RequiredRole models.UserRole           `gorm:"type:varchar(50)"`
	ApproverID   *string                   `gorm:"type:varchar(36)"`
	Approver     *SpaceUser                `gorm:"foreignKey:ApproverID"`
	Status       models.ApprovalStepStatus `gorm:"type:varchar(20)"`
	DecidedAt    *time.Time
	Comment      string
}

type ApprovalHistory struct {
	BaseSpaceModel
	RequestID  string                    `gorm:"type:varchar(36);index"`
	StepID     string                    `gorm:"type:varchar(36)"`
	ApproverID string                    `gorm:"type:varchar(36)"`
	Approver   *SpaceUser                `gorm:"foreignKey:ApproverID"`
	Status     models.ApprovalStepStatus `gorm:"type:varchar(20)"`
	Comment    string
	Changes    EntityChanges `gorm:"type:jsonb"`
}

func (r *ApprovalRequest) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("request_id = ?", r.ID).Delete(&ApprovalStep{})
	return
}

// GetCurrentStep возвращает текущий этап и признак того, что он последний.
// Для терминальной заявки этап отсутствует.
func (r ApprovalRequest) GetCurrentStep() (isLastStep bool, step *ApprovalStep) {
	if r.Status.IsTerminal() {
		return false, nil
	}
	for idx := range r.Steps {
		if r.Steps[idx].StepIndex == r.CurrentStepIndex {
			return r.CurrentStepIndex == len(r.Steps)-1, &r.Steps[idx]
		}
	}
	return false, nil
}

// CalcStatus — статус заявки как чистая функция статусов этапов:
// отклонение любого этапа делает заявку отклонённой, согласование всех
// этапов — согласованной, иначе заявка остаётся на согласовании.
func (r ApprovalRequest) CalcStatus() models.ApprovalRequestStatus {
	if r.Status == models.ARStatusCancelled {
		return models.ARStatusCancelled
	}
	approved := 0
	for _, step := range r.Steps {
		switch step.Status {
		case models.AStepRejected:
			return models.ARStatusRejected
		case models.AStepApproved:
			approved++
		}
	}
	if len(r.Steps) > 0 && approved == len(r.Steps) {
		return models.ARStatusApproved
	}
	return models.ARStatusPending
}
