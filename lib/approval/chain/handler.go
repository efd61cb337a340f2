package approvalchainhandler

import (
	"time"

	"site-tools-backend/db"
	"site-tools-backend/lib/apperrors"
	approvalchainhistorystore "site-tools-backend/lib/approval/chain/history-store"
	approvalchainstore "site-tools-backend/lib/approval/chain/store"
	scopehandler "site-tools-backend/lib/scope"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	"site-tools-backend/models"
	approvalapimodels "site-tools-backend/models/api/approval"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier — диспетчер уведомлений о переходах заявки. Уведомления
// отправляются по принципу fire-and-forget: движок не ждёт доставки
// и не повторяет отправку.
type Notifier interface {
	DecisionRequired(req dbmodels.ApprovalRequest, step dbmodels.ApprovalStep)
	Approved(req dbmodels.ApprovalRequest, approverName string)
	Rejected(req dbmodels.ApprovalRequest, approverName, comment string)
	Cancelled(req dbmodels.ApprovalRequest)
}

type Provider interface {
	Create(spaceID, initiatorID string, data approvalapimodels.ApprovalRequestCreateData) (id string, err error)
	Get(spaceID, userID, requestID string) (approvalapimodels.ApprovalRequestView, error)
	List(spaceID, userID string, filter approvalapimodels.ApprovalRequestFilter) ([]approvalapimodels.ApprovalRequestView, error)
	ActOnStep(spaceID, userID, requestID string, decision models.ApprovalDecision, data approvalapimodels.ApprovalDecisionData) error
	Cancel(spaceID, userID, requestID string, data approvalapimodels.ApprovalCancelData) error
	History(spaceID, requestID string) ([]approvalapimodels.ApprovalHistoryView, error)
	ExportList(spaceID, userID string, filter approvalapimodels.ApprovalRequestFilter) ([]dbmodels.ApprovalRequest, error)
	GetForExport(spaceID, userID, requestID string) (dbmodels.ApprovalRequest, []dbmodels.ApprovalHistory, error)
}

var Instance Provider

func NewHandler(notifier Notifier) {
	Instance = impl{
		store:           approvalchainstore.NewInstance(db.DB),
		historyStore:    approvalchainhistorystore.NewInstance(db.DB),
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
		scope:           scopehandler.Instance,
		notifier:        notifier,
	}
}

func NewHandlerWithTx(tx *gorm.DB, notifier Notifier) Provider {
	return impl{
		store:           approvalchainstore.NewInstance(tx),
		historyStore:    approvalchainhistorystore.NewInstance(tx),
		spaceUsersStore: spaceusersstore.NewInstance(tx),
		scope:           scopehandler.NewHandlerWithTx(tx),
		notifier:        notifier,
	}
}

type impl struct {
	store           approvalchainstore.Provider
	historyStore    approvalchainhistorystore.Provider
	spaceUsersStore spaceusersstore.Provider
	scope           scopehandler.Provider
	notifier        Notifier
}

func (i impl) GetLogger(spaceID, requestID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID).
		WithField("approval_request_id", requestID)
	return logger
}

func (i impl) Create(spaceID, initiatorID string, data approvalapimodels.ApprovalRequestCreateData) (id string, err error) {
	if err := data.Validate(); err != nil {
		return "", apperrors.InvalidStatef("%v", err)
	}
	initiator, err := i.spaceUsersStore.GetByID(initiatorID)
	if err != nil {
		return "", err
	}
	if initiator == nil || initiator.SpaceID != spaceID {
		return "", apperrors.NotFoundf("сотрудник %v не найден в справочнике сотрудников", initiatorID)
	}
	inScope, err := i.scope.InScope(spaceID, initiatorID, data.OrgUnitID)
	if err != nil {
		return "", err
	}
	if !inScope {
		return "", apperrors.Forbiddenf("подразделение %v недоступно инициатору", data.OrgUnitID)
	}
	roleChain := data.Type.RoleChain()
	if len(roleChain) == 0 {
		return "", apperrors.InvalidStatef("для типа заявки %v не задана цепочка согласования", data.Type)
	}
	rec := dbmodels.ApprovalRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Type:             data.Type,
		Title:            data.Title,
		Amount:           data.Amount,
		Category:         data.Category,
		InitiatorID:      initiatorID,
		OrgUnitID:        data.OrgUnitID,
		Status:           models.ARStatusPending,
		CurrentStepIndex: 0,
		Version:          0,
	}
	for idx, role := range roleChain {
		rec.Steps = append(rec.Steps, dbmodels.ApprovalStep{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				SpaceID: spaceID,
			},
			StepIndex:    idx,
			RequiredRole: role,
			Status:       models.AStepPending,
		})
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	rec.ID = id
	i.audit(rec, rec.Steps[0], "", "Заявка создана и отправлена на согласование")
	if i.notifier != nil {
		i.notifier.DecisionRequired(rec, rec.Steps[0])
	}
	return id, nil
}

// ActOnStep применяет решение по текущему этапу. Этапы решаются строго
// по порядку, решённый этап нельзя перерешать, терминальная заявка
// не принимает решений.
func (i impl) ActOnStep(spaceID, userID, requestID string, decision models.ApprovalDecision, data approvalapimodels.ApprovalDecisionData) error {
	if !decision.IsValid() {
		return apperrors.InvalidStatef("неизвестное решение: %v", decision)
	}
	req, err := i.store.GetByID(spaceID, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperrors.NotFoundf("заявка %v не найдена", requestID)
	}
	if req.Status.IsTerminal() {
		return apperrors.InvalidStatef("заявка в статусе %v не принимает решений", req.Status.ToHuman())
	}
	isLast, step := req.GetCurrentStep()
	if step == nil {
		return apperrors.Corruptf("в заявке %v отсутсвует текущий этап %v", requestID, req.CurrentStepIndex)
	}
	if step.Status.IsDecided() {
		return apperrors.InvalidStatef("этап %v уже решён", step.StepIndex)
	}
	actor, err := i.spaceUsersStore.GetByID(userID)
	if err != nil {
		return err
	}
	if actor == nil || actor.SpaceID != spaceID {
		return apperrors.NotFoundf("сотрудник %v не найден в справочнике сотрудников", userID)
	}
	if actor.Role != step.RequiredRole {
		return apperrors.Forbiddenf("этап %v требует решения роли %v", step.StepIndex, step.RequiredRole.ToHuman())
	}
	inScope, err := i.scope.InScope(spaceID, userID, req.OrgUnitID)
	if err != nil {
		return err
	}
	if !inScope {
		return apperrors.Forbiddenf("подразделение заявки недоступно пользователю %v", userID)
	}
	if decision == models.DecisionReject && data.Comment == "" {
		return apperrors.InvalidStatef("при отклонении заявки комментарий обязателен")
	}
	if data.ExpectedVersion != req.Version {
		return apperrors.Conflictf("заявка %v была изменена параллельно (версия %v, ожидалась %v)", requestID, req.Version, data.ExpectedVersion)
	}

	now := time.Now()
	step.ApproverID = &userID
	step.DecidedAt = &now
	step.Comment = data.Comment
	if decision == models.DecisionApprove {
		step.Status = models.AStepApproved
		if !isLast {
			req.CurrentStepIndex++
		}
	} else {
		step.Status = models.AStepRejected
	}
	// статус заявки — чистая функция статусов этапов
	req.Status = req.CalcStatus()

	err = i.store.ApplyDecision(*req, step, data.ExpectedVersion)
	if err != nil {
		return err
	}
	i.audit(*req, *step, userID, data.Comment)
	i.notifyDecision(*req, *step, actor.GetFullName(), isLast)
	return nil
}

func (i impl) notifyDecision(req dbmodels.ApprovalRequest, step dbmodels.ApprovalStep, approverName string, wasLast bool) {
	if i.notifier == nil {
		return
	}
	switch step.Status {
	case models.AStepRejected:
		i.notifier.Rejected(req, approverName, step.Comment)
	case models.AStepApproved:
		if wasLast {
			i.notifier.Approved(req, approverName)
			return
		}
		// следующий этап ждёт решения
		if _, next := req.GetCurrentStep(); next != nil {
			i.notifier.DecisionRequired(req, *next)
		}
	}
}

func (i impl) Cancel(spaceID, userID, requestID string, data approvalapimodels.ApprovalCancelData) error {
	req, err := i.store.GetByID(spaceID, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperrors.NotFoundf("заявка %v не найдена", requestID)
	}
	if req.InitiatorID != userID {
		return apperrors.Forbiddenf("отменить заявку может только её инициатор")
	}
	if req.Status != models.ARStatusPending {
		return apperrors.InvalidStatef("заявка в статусе %v не может быть отменена", req.Status.ToHuman())
	}
	if data.ExpectedVersion != req.Version {
		return apperrors.Conflictf("заявка %v была изменена параллельно (версия %v, ожидалась %v)", requestID, req.Version, data.ExpectedVersion)
	}
	req.Status = models.ARStatusCancelled
	err = i.store.ApplyDecision(*req, nil, data.ExpectedVersion)
	if err != nil {
		return err
	}
	i.auditCancel(*req, userID)
	if i.notifier != nil {
		i.notifier.Cancelled(*req)
	}
	return nil
}

func (i impl) Get(spaceID, userID, requestID string) (approvalapimodels.ApprovalRequestView, error) {
	req, err := i.store.GetByID(spaceID, requestID)
	if err != nil {
		return approvalapimodels.ApprovalRequestView{}, err
	}
	if req == nil {
		return approvalapimodels.ApprovalRequestView{}, apperrors.NotFoundf("заявка %v не найдена", requestID)
	}
	inScope, err := i.scope.InScope(spaceID, userID, req.OrgUnitID)
	if err != nil {
		return approvalapimodels.ApprovalRequestView{}, err
	}
	// инициатор видит свою заявку даже после сужения скоупа
	if !inScope && req.InitiatorID != userID {
		return approvalapimodels.ApprovalRequestView{}, apperrors.Forbiddenf("заявка %v недоступна пользователю", requestID)
	}
	return approvalapimodels.ApprovalRequestConvert(*req), nil
}

func (i impl) List(spaceID, userID string, filter approvalapimodels.ApprovalRequestFilter) ([]approvalapimodels.ApprovalRequestView, error) {
	list, err := i.listRecords(spaceID, userID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.ApprovalRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.ApprovalRequestConvert(rec))
	}
	return result, nil
}

// ExportList возвращает записи реестра для выгрузки, с теми же
// правилами видимости, что и List
func (i impl) ExportList(spaceID, userID string, filter approvalapimodels.ApprovalRequestFilter) ([]dbmodels.ApprovalRequest, error) {
	return i.listRecords(spaceID, userID, filter)
}

func (i impl) listRecords(spaceID, userID string, filter approvalapimodels.ApprovalRequestFilter) ([]dbmodels.ApprovalRequest, error) {
	scope, err := i.scope.Narrow(spaceID, userID, filter.OrgUnitID)
	if err != nil {
		return nil, err
	}
	list, err := i.store.List(spaceID, filter)
	if err != nil {
		return nil, err
	}
	if filter.MyTurn {
		actor, err := i.spaceUsersStore.GetByID(userID)
		if err != nil {
			return nil, err
		}
		if actor == nil || actor.SpaceID != spaceID {
			return nil, apperrors.NotFoundf("сотрудник %v не найден в справочнике сотрудников", userID)
		}
		list = approvalchainstore.MyTurnFilter(list, actor.Role)
	}
	result := make([]dbmodels.ApprovalRequest, 0, len(list))
	for _, rec := range list {
		if !scope[rec.OrgUnitID] && rec.InitiatorID != userID {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (i impl) GetForExport(spaceID, userID, requestID string) (dbmodels.ApprovalRequest, []dbmodels.ApprovalHistory, error) {
	req, err := i.store.GetByID(spaceID, requestID)
	if err != nil {
		return dbmodels.ApprovalRequest{}, nil, err
	}
	if req == nil {
		return dbmodels.ApprovalRequest{}, nil, apperrors.NotFoundf("заявка %v не найдена", requestID)
	}
	inScope, err := i.scope.InScope(spaceID, userID, req.OrgUnitID)
	if err != nil {
		return dbmodels.ApprovalRequest{}, nil, err
	}
	if !inScope && req.InitiatorID != userID {
		return dbmodels.ApprovalRequest{}, nil, apperrors.Forbiddenf("заявка %v недоступна пользователю", requestID)
	}
	history, err := i.historyStore.List(spaceID, requestID)
	if err != nil {
		return dbmodels.ApprovalRequest{}, nil, err
	}
	return *req, history, nil
}

func (i impl) History(spaceID, requestID string) ([]approvalapimodels.ApprovalHistoryView, error) {
	list, err := i.historyStore.List(spaceID, requestID)
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.ApprovalHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.ApprovalHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) audit(req dbmodels.ApprovalRequest, step dbmodels.ApprovalStep, approverID, comment string) {
	rec := dbmodels.ApprovalHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: req.SpaceID,
		},
		RequestID:  req.ID,
		StepID:     step.ID,
		ApproverID: approverID,
		Status:     step.Status,
		Comment:    comment,
		Changes: dbmodels.EntityChanges{
			Description: step.Status.ToHuman(),
			Data: []dbmodels.FieldChanges{
				{Field: "status", OldValue: string(models.AStepPending), NewValue: string(step.Status)},
			},
		},
	}
	_, err := i.historyStore.Create(rec)
	if err != nil {
		i.GetLogger(req.SpaceID, req.ID).WithError(err).Error("Ошибка добавления истории по заявке на согласование")
	}
}

func (i impl) auditCancel(req dbmodels.ApprovalRequest, userID string) {
	rec := dbmodels.ApprovalHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: req.SpaceID,
		},
		RequestID:  req.ID,
		ApproverID: userID,
		Status:     models.AStepPending,
		Comment:    "Заявка отменена инициатором",
		Changes: dbmodels.EntityChanges{
			Description: models.ARStatusCancelled.ToHuman(),
			Data: []dbmodels.FieldChanges{
				{Field: "status", OldValue: string(models.ARStatusPending), NewValue: string(models.ARStatusCancelled)},
			},
		},
	}
	_, err := i.historyStore.Create(rec)
	if err != nil {
		i.GetLogger(req.SpaceID, req.ID).WithError(err).Error("Ошибка добавления истории по заявке на согласование")
	}
}
