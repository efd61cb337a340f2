package approvalapimodels

import (
	"strings"
	"time"

	"site-tools-backend/models"
	apimodels "site-tools-backend/models/api"
	dbmodels "site-tools-backend/models/db"

	"github.com/pkg/errors"
)

type ApprovalRequestCreateData struct {
	Type      models.ApprovalRequestType `json:"type"`       // Тип заявки
	Title     string                     `json:"title"`      // Название заявки
	Amount    int64                      `json:"amount"`     // Сумма
	Category  models.ApprovalCategory    `json:"category"`   // Финансовая категория
	OrgUnitID string                     `json:"org_unit_id"` // Подразделение, к которому относится заявка
}

func (d ApprovalRequestCreateData) Validate() error {
	if !d.Type.IsValid() {
		return errors.Errorf("неизвестный тип заявки: %v", d.Type)
	}
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("не указано название заявки")
	}
	if d.Amount <= 0 {
		return errors.New("сумма заявки должна быть больше нуля")
	}
	if !d.Category.IsValid() {
		return errors.Errorf("неизвестная категория: %v", d.Category)
	}
	if d.OrgUnitID == "" {
		return errors.New("не указано подразделение")
	}
	return nil
}

// Решение по текущему этапу. ExpectedVersion — последняя версия заявки,
// которую видел клиент; при несовпадении с версией в хранилище решение
// не применяется.
type ApprovalDecisionData struct {
	Comment         string `json:"comment"`          // Комментарий (обязателен при отклонении)
	ExpectedVersion int64  `json:"expected_version"` // Ожидаемая версия заявки
}

type ApprovalCancelData struct {
	ExpectedVersion int64 `json:"expected_version"` // Ожидаемая версия заявки
}

type ApprovalStepView struct {
	ID            string                    `json:"id"`
	StepIndex     int                       `json:"step_index"`     // Порядковый номер этапа
	RequiredRole  models.UserRole           `json:"required_role"`  // Роль, которая должна принять решение
	RoleHuman     string                    `json:"role_human"`     // Роль для отображения
	ApproverID    string                    `json:"approver_id"`    // Кто принял решение
	ApproverName  string                    `json:"approver_name"`  // ФИО принявшего решение
	Status        models.ApprovalStepStatus `json:"status"`         // Статус этапа
	StatusHuman   string                    `json:"status_human"`   // Статус для отображения
	DecidedAt     *time.Time                `json:"decided_at"`     // Время решения
	Comment       string                    `json:"comment"`        // Комментарий
}

type ApprovalRequestView struct {
	ID               string                       `json:"id"`
	Type             models.ApprovalRequestType   `json:"type"`
	TypeHuman        string                       `json:"type_human"`
	Title            string                       `json:"title"`
	Amount           int64                        `json:"amount"`
	Category         models.ApprovalCategory      `json:"category"`
	CategoryHuman    string                       `json:"category_human"`
	InitiatorID      string                       `json:"initiator_id"`
	InitiatorName    string                       `json:"initiator_name"`
	OrgUnitID        string                       `json:"org_unit_id"`
	OrgUnitName      string                       `json:"org_unit_name"`
	Status           models.ApprovalRequestStatus `json:"status"`
	StatusHuman      string                       `json:"status_human"`
	CurrentStepIndex int                          `json:"current_step_index"`
	Version          int64                        `json:"version"`
	CreatedAt        time.Time                    `json:"created_at"`
	Steps            []ApprovalStepView           `json:"steps"`
}

func ApprovalStepConvert(rec dbmodels.ApprovalStep) ApprovalStepView {
	approverID := ""
	if rec.ApproverID != nil {
		approverID = *rec.ApproverID
	}
	approverName := ""
	if rec.Approver != nil {
		approverName = rec.Approver.GetFullName()
	}
	return ApprovalStepView{
		ID:           rec.ID,
		StepIndex:    rec.StepIndex,
		RequiredRole: rec.RequiredRole,
		RoleHuman:    rec.RequiredRole.ToHuman(),
		ApproverID:   approverID,
		ApproverName: approverName,
		Status:       rec.Status,
		StatusHuman:  rec.Status.ToHuman(),
		DecidedAt:    rec.DecidedAt,
		Comment:      rec.Comment,
	}
}

func ApprovalRequestConvert(rec dbmodels.ApprovalRequest) ApprovalRequestView {
	initiatorName := ""
	if rec.Initiator != nil {
		initiatorName = rec.Initiator.GetFullName()
	}
	orgUnitName := ""
	if rec.OrgUnit != nil {
		orgUnitName = rec.OrgUnit.Name
	}
	steps := make([]ApprovalStepView, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		steps = append(steps, ApprovalStepConvert(step))
	}
	return ApprovalRequestView{
		ID:               rec.ID,
		Type:             rec.Type,
		TypeHuman:        rec.Type.ToHuman(),
		Title:            rec.Title,
		Amount:           rec.Amount,
		Category:         rec.Category,
		CategoryHuman:    rec.Category.ToHuman(),
		InitiatorID:      rec.InitiatorID,
		InitiatorName:    initiatorName,
		OrgUnitID:        rec.OrgUnitID,
		OrgUnitName:      orgUnitName,
		Status:           rec.Status,
		StatusHuman:      rec.Status.ToHuman(),
		CurrentStepIndex: rec.CurrentStepIndex,
		Version:          rec.Version,
		CreatedAt:        rec.CreatedAt,
		Steps:            steps,
	}
}

type ApprovalHistoryView struct {
	RequestID    string                    `json:"request_id"`
	StepID       string                    `json:"step_id"`
	ApproverID   string                    `json:"approver_id"`
	ApproverName string                    `json:"approver_name"`
	Status       models.ApprovalStepStatus `json:"status"`
	Comment      string                    `json:"comment"`
	CreatedAt    time.Time                 `json:"created_at"`
	Changes      dbmodels.EntityChanges    `json:"changes"` // Изменения
}

func ApprovalHistoryConvert(rec dbmodels.ApprovalHistory) ApprovalHistoryView {
	approverName := ""
	if rec.Approver != nil {
		approverName = rec.Approver.GetFullName()
	}
	return ApprovalHistoryView{
		RequestID:    rec.RequestID,
		StepID:       rec.StepID,
		ApproverID:   rec.ApproverID,
		ApproverName: approverName,
		Status:       rec.Status,
		Comment:      rec.Comment,
		CreatedAt:    rec.CreatedAt,
		Changes:      rec.Changes,
	}
}

type ApprovalRequestFilter struct {
	apimodels.Pagination
	Statuses  []models.ApprovalRequestStatus `json:"statuses"`    // Фильтр по статусам
	Category  models.ApprovalCategory        `json:"category"`    // Фильтр по категории
	OrgUnitID string                         `json:"org_unit_id"` // Фильтр по подразделению
	MyTurn    bool                           `json:"my_turn"`     // Только заявки, ожидающие решения пользователя
}

type PolicyCheckData struct {
	Category models.ApprovalCategory `json:"category"` // Финансовая категория
	Amount   int64                   `json:"amount"`   // Сумма
}

func (d PolicyCheckData) Validate() error {
	if !d.Category.IsValid() {
		return errors.Errorf("неизвестная категория: %v", d.Category)
	}
	if d.Amount <= 0 {
		return errors.New("сумма должна быть больше нуля")
	}
	return nil
}

// Проверка возможности согласования суммы ролью
type PolicyCheckView struct {
	CanApprove     bool            `json:"can_approve"`     // Укладывается ли сумма в лимит роли
	RequiredRole   models.UserRole `json:"required_role"`   // Минимальная роль, лимита которой достаточно
	ShouldEscalate bool            `json:"should_escalate"` // Требуется ли эскалация
}
