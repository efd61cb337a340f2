package scopehandler

import (
	"site-tools-backend/db"
	"site-tools-backend/lib/apperrors"
	orgtreehandler "site-tools-backend/lib/org-tree"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	orgapimodels "site-tools-backend/models/api/org"

	"gorm.io/gorm"
)

// Provider вычисляет эффективный скоуп пользователя: объединение поддеревьев
// основного подразделения и всех дополнительных назначений. Роли уровня
// пространства видят оргструктуру целиком.
type Provider interface {
	GetScope(spaceID, userID string) (unitIDs map[string]bool, err error)
	GetScopeView(spaceID, userID string) (orgapimodels.ScopeView, error)
	Narrow(spaceID, userID, selectedUnitID string) (unitIDs map[string]bool, err error)
	InScope(spaceID, userID, unitID string) (bool, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		orgTree:         orgtreehandler.Instance,
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		orgTree:         orgtreehandler.NewHandlerWithTx(tx),
		spaceUsersStore: spaceusersstore.NewInstance(tx),
	}
}

type impl struct {
	orgTree         orgtreehandler.Provider
	spaceUsersStore spaceusersstore.Provider
}

func (i impl) GetScope(spaceID, userID string) (map[string]bool, error) {
	user, err := i.spaceUsersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.SpaceID != spaceID {
		return nil, apperrors.NotFoundf("сотрудник %v не найден в справочнике сотрудников", userID)
	}
	snapshot, err := i.orgTree.Snapshot(spaceID)
	if err != nil {
		return nil, err
	}
	if user.Role.IsWildcard() {
		return snapshot.AllIDs(), nil
	}
	roots := []string{}
	if user.HomeOrgUnitID != "" {
		roots = append(roots, user.HomeOrgUnitID)
	}
	roots = append(roots, user.AssignmentIDs()...)
	result := map[string]bool{}
	for _, rootID := range roots {
		subtree, err := snapshot.GetSubtreeIDs(rootID)
		if err != nil {
			// назначение могло пережить удалённое подразделение
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		for id := range subtree {
			result[id] = true
		}
	}
	return result, nil
}

func (i impl) GetScopeView(spaceID, userID string) (orgapimodels.ScopeView, error) {
	scope, err := i.GetScope(spaceID, userID)
	if err != nil {
		return orgapimodels.ScopeView{}, err
	}
	view := orgapimodels.ScopeView{
		UnitIDs: make([]string, 0, len(scope)),
	}
	for id := range scope {
		view.UnitIDs = append(view.UnitIDs, id)
	}
	return view, nil
}

// Narrow пересекает скоуп с поддеревом выбранного подразделения.
// Сужение никогда не расширяет скоуп: выбор предка оставляет видимой
// свою часть дерева, выбор постороннего подразделения даёт пустой скоуп.
func (i impl) Narrow(spaceID, userID, selectedUnitID string) (map[string]bool, error) {
	scope, err := i.GetScope(spaceID, userID)
	if err != nil {
		return nil, err
	}
	if selectedUnitID == "" {
		return scope, nil
	}
	snapshot, err := i.orgTree.Snapshot(spaceID)
	if err != nil {
		return nil, err
	}
	subtree, err := snapshot.GetSubtreeIDs(selectedUnitID)
	if err != nil {
		return nil, err
	}
	result := map[string]bool{}
	for id := range subtree {
		if scope[id] {
			result[id] = true
		}
	}
	return result, nil
}

func (i impl) InScope(spaceID, userID, unitID string) (bool, error) {
	scope, err := i.GetScope(spaceID, userID)
	if err != nil {
		return false, err
	}
	return scope[unitID], nil
}
