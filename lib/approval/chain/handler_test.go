package approvalchainhandler

import (
	"fmt"
	"testing"

	"site-tools-backend/lib/apperrors"
	approvalchainstore "site-tools-backend/lib/approval/chain/store"
	"site-tools-backend/models"
	approvalapimodels "site-tools-backend/models/api/approval"
	orgapimodels "site-tools-backend/models/api/org"
	dbmodels "site-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

const testSpaceID = "space1"

// fakeStore повторяет CAS-семантику настоящего хранилища в памяти
type fakeStore struct {
	seq      int
	requests map[string]*dbmodels.ApprovalRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{requests: map[string]*dbmodels.ApprovalRequest{}}
}

func (f *fakeStore) nextID() string {
	f.seq++
	return fmt.Sprintf("id-%d", f.seq)
}

func (f *fakeStore) Create(rec dbmodels.ApprovalRequest) (string, error) {
	rec.ID = f.nextID()
	for idx := range rec.Steps {
		rec.Steps[idx].ID = f.nextID()
		rec.Steps[idx].RequestID = rec.ID
	}
	stored := rec
	stored.Steps = make([]dbmodels.ApprovalStep, len(rec.Steps))
	copy(stored.Steps, rec.Steps)
	f.requests[rec.ID] = &stored
	return rec.ID, nil
}

func (f *fakeStore) GetByID(spaceID, id string) (*dbmodels.ApprovalRequest, error) {
	rec, ok := f.requests[id]
	if !ok || rec.SpaceID != spaceID {
		return nil, nil
	}
	result := *rec
	result.Steps = make([]dbmodels.ApprovalStep, len(rec.Steps))
	copy(result.Steps, rec.Steps)
	return &result, nil
}

func (f *fakeStore) List(spaceID string, filter approvalapimodels.ApprovalRequestFilter) ([]dbmodels.ApprovalRequest, error) {
	result := []dbmodels.ApprovalRequest{}
	for _, rec := range f.requests {
		if rec.SpaceID != spaceID {
			continue
		}
		if filter.OrgUnitID != "" && rec.OrgUnitID != filter.OrgUnitID {
			continue
		}
		result = append(result, *rec)
	}
	return result, nil
}

func (f *fakeStore) ApplyDecision(req dbmodels.ApprovalRequest, step *dbmodels.ApprovalStep, expectedVersion int64) error {
	stored, ok := f.requests[req.ID]
	if !ok {
		return apperrors.NotFoundf("заявка %v не найдена", req.ID)
	}
	if stored.Version != expectedVersion {
		return apperrors.Conflictf("заявка %v была изменена параллельно (версия %v, ожидалась %v)", req.ID, stored.Version, expectedVersion)
	}
	stored.Status = req.Status
	stored.CurrentStepIndex = req.CurrentStepIndex
	stored.Version = expectedVersion + 1
	if step != nil {
		for idx := range stored.Steps {
			if stored.Steps[idx].ID == step.ID {
				stored.Steps[idx] = *step
			}
		}
	}
	return nil
}

func (f *fakeStore) Delete(spaceID, id string) error {
	delete(f.requests, id)
	return nil
}

var _ approvalchainstore.Provider = &fakeStore{}

type fakeHistoryStore struct {
	records []dbmodels.ApprovalHistory
}

func (f *fakeHistoryStore) Create(rec dbmodels.ApprovalHistory) (string, error) {
	f.records = append(f.records, rec)
	return fmt.Sprintf("h-%d", len(f.records)), nil
}

func (f *fakeHistoryStore) Delete(id string) error { return nil }

func (f *fakeHistoryStore) DeleteByRequest(spaceID, requestID string) error { return nil }

func (f *fakeHistoryStore) List(spaceID, requestID string) ([]dbmodels.ApprovalHistory, error) {
	result := []dbmodels.ApprovalHistory{}
	for _, rec := range f.records {
		if rec.SpaceID == spaceID && rec.RequestID == requestID {
			result = append(result, rec)
		}
	}
	return result, nil
}

type fakeUsersStore struct {
	users map[string]dbmodels.SpaceUser
}

func (f fakeUsersStore) GetByID(userID string) (*dbmodels.SpaceUser, error) {
	rec, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeUsersStore) Create(rec dbmodels.SpaceUser) (string, error) { panic("not implemented") }

func (f fakeUsersStore) Update(userID string, updMap map[string]interface{}) error {
	panic("not implemented")
}

func (f fakeUsersStore) Delete(userID string) error { panic("not implemented") }

func (f fakeUsersStore) GetList(spaceID string, page, limit int) ([]dbmodels.SpaceUser, error) {
	panic("not implemented")
}

func (f fakeUsersStore) ExistByEmail(email string) (bool, error) { panic("not implemented") }

func (f fakeUsersStore) FindByEmail(email string) (*dbmodels.SpaceUser, error) {
	panic("not implemented")
}

func (f fakeUsersStore) ListByRole(spaceID string, role models.UserRole) ([]dbmodels.SpaceUser, error) {
	panic("not implemented")
}

func (f fakeUsersStore) Search(spaceID, search string) ([]dbmodels.SpaceUser, error) {
	panic("not implemented")
}

func (f fakeUsersStore) AddAssignment(rec dbmodels.UserOrgAssignment) (string, error) {
	panic("not implemented")
}

func (f fakeUsersStore) DeleteAssignment(spaceID, userID, orgUnitID string) error {
	panic("not implemented")
}

// fakeScope разрешает каждому пользователю явно перечисленные подразделения
type fakeScope struct {
	byUser map[string]map[string]bool
}

func (f fakeScope) GetScope(spaceID, userID string) (map[string]bool, error) {
	return f.byUser[userID], nil
}

func (f fakeScope) GetScopeView(spaceID, userID string) (orgapimodels.ScopeView, error) {
	panic("not implemented")
}

func (f fakeScope) Narrow(spaceID, userID, selectedUnitID string) (map[string]bool, error) {
	scope := f.byUser[userID]
	if selectedUnitID == "" {
		return scope, nil
	}
	if !scope[selectedUnitID] {
		return map[string]bool{}, nil
	}
	return map[string]bool{selectedUnitID: true}, nil
}

func (f fakeScope) InScope(spaceID, userID, unitID string) (bool, error) {
	return f.byUser[userID][unitID], nil
}

type notifyEvent struct {
	kind      string
	requestID string
	role      models.UserRole
}

type fakeNotifier struct {
	events []notifyEvent
}

func (f *fakeNotifier) DecisionRequired(req dbmodels.ApprovalRequest, step dbmodels.ApprovalStep) {
	f.events = append(f.events, notifyEvent{kind: "decision_required", requestID: req.ID, role: step.RequiredRole})
}

func (f *fakeNotifier) Approved(req dbmodels.ApprovalRequest, approverName string) {
	f.events = append(f.events, notifyEvent{kind: "approved", requestID: req.ID})
}

func (f *fakeNotifier) Rejected(req dbmodels.ApprovalRequest, approverName, comment string) {
	f.events = append(f.events, notifyEvent{kind: "rejected", requestID: req.ID})
}

func (f *fakeNotifier) Cancelled(req dbmodels.ApprovalRequest) {
	f.events = append(f.events, notifyEvent{kind: "cancelled", requestID: req.ID})
}

type testEnv struct {
	handler  impl
	store    *fakeStore
	history  *fakeHistoryStore
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	history := &fakeHistoryStore{}
	notifier := &fakeNotifier{}
	users := map[string]dbmodels.SpaceUser{
		"initiator": {BaseModel: dbmodels.BaseModel{ID: "initiator"}, SpaceID: testSpaceID, Role: models.ZoneManagerRole, FirstName: "Иван", LastName: "Иванов"},
		"site":      {BaseModel: dbmodels.BaseModel{ID: "site"}, SpaceID: testSpaceID, Role: models.SiteManagerRole, FirstName: "Пётр", LastName: "Петров"},
		"project":   {BaseModel: dbmodels.BaseModel{ID: "project"}, SpaceID: testSpaceID, Role: models.ProjectManagerRole, FirstName: "Анна", LastName: "Сидорова"},
		"finance":   {BaseModel: dbmodels.BaseModel{ID: "finance"}, SpaceID: testSpaceID, Role: models.FinanceManagerRole, FirstName: "Олег", LastName: "Смирнов"},
		"outsider":  {BaseModel: dbmodels.BaseModel{ID: "outsider"}, SpaceID: testSpaceID, Role: models.ProjectManagerRole, FirstName: "Фёдор", LastName: "Козлов"},
	}
	scope := fakeScope{byUser: map[string]map[string]bool{
		"initiator": {"Z1": true},
		"site":      {"Z1": true},
		"project":   {"Z1": true},
		"finance":   {"Z1": true},
		"outsider":  {"J9": true},
	}}
	return &testEnv{
		handler: impl{
			store:           store,
			historyStore:    history,
			spaceUsersStore: fakeUsersStore{users: users},
			scope:           scope,
			notifier:        notifier,
		},
		store:    store,
		history:  history,
		notifier: notifier,
	}
}

func createBudgetRequest(t *testing.T, env *testEnv) string {
	id, err := env.handler.Create(testSpaceID, "initiator", approvalapimodels.ApprovalRequestCreateData{
		Type:      models.ARTypeBudgetChange,
		Title:     "Корректировка бюджета участка",
		Amount:    2500,
		Category:  models.CategoryGeneral,
		OrgUnitID: "Z1",
	})
	require.Nil(t, err)
	return id
}

func approveData(version int64) approvalapimodels.ApprovalDecisionData {
	return approvalapimodels.ApprovalDecisionData{ExpectedVersion: version}
}

func TestCreate(t *testing.T) {
	t.Run("цепочка этапов строится по типу заявки", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, models.ARStatusPending, view.Status)
		require.Equal(t, 0, view.CurrentStepIndex)
		require.Equal(t, int64(0), view.Version)
		require.Len(t, view.Steps, 3)
		require.Equal(t, models.SiteManagerRole, view.Steps[0].RequiredRole)
		require.Equal(t, models.ProjectManagerRole, view.Steps[1].RequiredRole)
		require.Equal(t, models.FinanceManagerRole, view.Steps[2].RequiredRole)

		require.Len(t, env.notifier.events, 1)
		require.Equal(t, "decision_required", env.notifier.events[0].kind)
		require.Equal(t, models.SiteManagerRole, env.notifier.events[0].role)
	})

	t.Run("подразделение вне скоупа инициатора", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(testSpaceID, "initiator", approvalapimodels.ApprovalRequestCreateData{
			Type:      models.ARTypeBudgetChange,
			Title:     "Чужое подразделение",
			Amount:    100,
			Category:  models.CategoryGeneral,
			OrgUnitID: "J9",
		})
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run("невалидные данные", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(testSpaceID, "initiator", approvalapimodels.ApprovalRequestCreateData{
			Type:      models.ApprovalRequestType("unknown"),
			Title:     "Заявка",
			Amount:    100,
			Category:  models.CategoryGeneral,
			OrgUnitID: "Z1",
		})
		require.True(t, apperrors.IsInvalidState(err))
	})
}

func TestActOnStep(t *testing.T) {
	t.Run("полное прохождение цепочки", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)
		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionApprove, approveData(1))
		require.Nil(t, err)
		err = env.handler.ActOnStep(testSpaceID, "finance", id, models.DecisionApprove, approveData(2))
		require.Nil(t, err)

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, models.ARStatusApproved, view.Status)
		require.Equal(t, int64(3), view.Version)
		for _, step := range view.Steps {
			require.Equal(t, models.AStepApproved, step.Status)
			require.NotNil(t, step.DecidedAt)
		}

		// создание, два промежуточных этапа, финальное согласование
		kinds := []string{}
		for _, event := range env.notifier.events {
			kinds = append(kinds, event.kind)
		}
		require.Equal(t, []string{"decision_required", "decision_required", "decision_required", "approved"}, kinds)
	})

	t.Run("статус заявки выводится из статусов этапов", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)
		rec := env.store.requests[id]
		require.Equal(t, models.ARStatusPending, rec.Status)
		require.Equal(t, rec.CalcStatus(), rec.Status)

		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionReject, approvalapimodels.ApprovalDecisionData{
			Comment:         "Не согласовано направлением",
			ExpectedVersion: 1,
		})
		require.Nil(t, err)
		rec = env.store.requests[id]
		require.Equal(t, models.ARStatusRejected, rec.Status)
		require.Equal(t, rec.CalcStatus(), rec.Status)
	})

	t.Run("решение вне очереди запрещено", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "finance", id, models.DecisionApprove, approveData(0))
		require.True(t, apperrors.IsForbidden(err))

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, 0, view.CurrentStepIndex)
		require.Equal(t, int64(0), view.Version)
	})

	t.Run("решение вне скоупа запрещено", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)

		err = env.handler.ActOnStep(testSpaceID, "outsider", id, models.DecisionApprove, approveData(1))
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run("отклонение требует комментарий", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionReject, approveData(0))
		require.True(t, apperrors.IsInvalidState(err))

		// заявка не изменилась
		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, models.ARStatusPending, view.Status)
		require.Equal(t, int64(0), view.Version)
	})

	t.Run("отклонение делает заявку терминальной", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)
		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionReject, approvalapimodels.ApprovalDecisionData{
			Comment:         "Превышен бюджет направления",
			ExpectedVersion: 1,
		})
		require.Nil(t, err)

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, models.ARStatusRejected, view.Status)
		require.Equal(t, models.AStepRejected, view.Steps[1].Status)
		// третий этап остался нерешённым
		require.Equal(t, models.AStepPending, view.Steps[2].Status)

		err = env.handler.ActOnStep(testSpaceID, "finance", id, models.DecisionApprove, approveData(2))
		require.True(t, apperrors.IsInvalidState(err))
	})

	t.Run("конфликт версий при гонке решений", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)

		// второй участник действует по устаревшей версии
		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionApprove, approveData(0))
		require.True(t, apperrors.IsConflict(err))

		// после перечитывания решение проходит
		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionApprove, approveData(1))
		require.Nil(t, err)

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, 2, view.CurrentStepIndex)
		require.Equal(t, int64(2), view.Version)
	})

	t.Run("неизвестная заявка", func(t *testing.T) {
		env := newTestEnv()
		err := env.handler.ActOnStep(testSpaceID, "site", "missing", models.DecisionApprove, approveData(0))
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestCancel(t *testing.T) {
	t.Run("инициатор отменяет ожидающую заявку", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.Cancel(testSpaceID, "initiator", id, approvalapimodels.ApprovalCancelData{ExpectedVersion: 0})
		require.Nil(t, err)

		view, err := env.handler.Get(testSpaceID, "initiator", id)
		require.Nil(t, err)
		require.Equal(t, models.ARStatusCancelled, view.Status)

		err = env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(1))
		require.True(t, apperrors.IsInvalidState(err))
	})

	t.Run("отмена не инициатором запрещена", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.Cancel(testSpaceID, "site", id, approvalapimodels.ApprovalCancelData{ExpectedVersion: 0})
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run("терминальная заявка не отменяется", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.Cancel(testSpaceID, "initiator", id, approvalapimodels.ApprovalCancelData{ExpectedVersion: 0})
		require.Nil(t, err)
		err = env.handler.Cancel(testSpaceID, "initiator", id, approvalapimodels.ApprovalCancelData{ExpectedVersion: 1})
		require.True(t, apperrors.IsInvalidState(err))
	})
}

func TestHistory(t *testing.T) {
	t.Run("каждое решение оставляет запись", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		err := env.handler.ActOnStep(testSpaceID, "site", id, models.DecisionApprove, approveData(0))
		require.Nil(t, err)
		err = env.handler.ActOnStep(testSpaceID, "project", id, models.DecisionReject, approvalapimodels.ApprovalDecisionData{
			Comment:         "Не согласовано",
			ExpectedVersion: 1,
		})
		require.Nil(t, err)

		history, err := env.handler.History(testSpaceID, id)
		require.Nil(t, err)
		require.Len(t, history, 3)
		require.Equal(t, models.AStepPending, history[0].Status)
		require.Equal(t, models.AStepApproved, history[1].Status)
		require.Equal(t, models.AStepRejected, history[2].Status)
		require.Equal(t, "Не согласовано", history[2].Comment)
	})
}

func TestList(t *testing.T) {
	t.Run("фильтр по очереди пользователя", func(t *testing.T) {
		env := newTestEnv()
		id := createBudgetRequest(t, env)

		list, err := env.handler.List(testSpaceID, "site", approvalapimodels.ApprovalRequestFilter{MyTurn: true})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, id, list[0].ID)

		list, err = env.handler.List(testSpaceID, "finance", approvalapimodels.ApprovalRequestFilter{MyTurn: true})
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run("заявки вне скоупа не видны", func(t *testing.T) {
		env := newTestEnv()
		createBudgetRequest(t, env)

		list, err := env.handler.List(testSpaceID, "outsider", approvalapimodels.ApprovalRequestFilter{})
		require.Nil(t, err)
		require.Len(t, list, 0)
	})
}
