package orgtreehandler

import (
	"sync"

	"site-tools-backend/db"
	"site-tools-backend/lib/apperrors"
	orgtreesnapshot "site-tools-backend/lib/org-tree/snapshot"
	orgtreestore "site-tools-backend/lib/org-tree/store"
	orgapimodels "site-tools-backend/models/api/org"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(spaceID string, data orgapimodels.OrgUnitData) (id string, err error)
	Update(spaceID, id string, data orgapimodels.OrgUnitData) error
	Delete(spaceID, id string) error
	Get(spaceID, id string) (orgapimodels.OrgUnitView, error)
	List(spaceID string) ([]orgapimodels.OrgUnitView, error)
	GetPath(spaceID, id string) (orgapimodels.OrgUnitPathView, error)
	Snapshot(spaceID string) (*orgtreesnapshot.Snapshot, error)
	ResetCache(spaceID string)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: orgtreestore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return &impl{
		store: orgtreestore.NewInstance(tx),
	}
}

type impl struct {
	store orgtreestore.Provider
	cache sync.Map // spaceID -> *orgtreesnapshot.Snapshot
}

func (i *impl) GetLogger(spaceID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID)
	return logger
}

// Snapshot отдаёт срез дерева пространства из кэша; кэш сбрасывается
// любой мутацией оргструктуры этого пространства
func (i *impl) Snapshot(spaceID string) (*orgtreesnapshot.Snapshot, error) {
	if cached, ok := i.cache.Load(spaceID); ok {
		return cached.(*orgtreesnapshot.Snapshot), nil
	}
	list, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	snapshot, err := orgtreesnapshot.NewSnapshot(list)
	if err != nil {
		return nil, err
	}
	i.cache.Store(spaceID, snapshot)
	return snapshot, nil
}

func (i *impl) ResetCache(spaceID string) {
	i.cache.Delete(spaceID)
}

func (i *impl) Create(spaceID string, data orgapimodels.OrgUnitData) (id string, err error) {
	rec := dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Type:   data.Type,
		Name:   data.Name,
		Code:   data.Code,
		Region: data.Region,
	}
	if data.ParentID != "" {
		rec.ParentID = &data.ParentID
	}
	if err := rec.Validate(); err != nil {
		return "", apperrors.InvalidStatef("%v", err)
	}
	if err := i.checkParent(spaceID, data); err != nil {
		return "", err
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	i.ResetCache(spaceID)
	return id, nil
}

func (i *impl) Update(spaceID, id string, data orgapimodels.OrgUnitData) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFoundf("подразделение %v не найдено", id)
	}
	if data.Type != rec.Type {
		return apperrors.InvalidStatef("тип подразделения не может быть изменён")
	}
	if err := i.checkParent(spaceID, data); err != nil {
		return err
	}
	if data.ParentID == id {
		return apperrors.InvalidStatef("подразделение не может быть родителем самого себя")
	}
	// перенос узла под собственного потомка создал бы цикл
	if data.ParentID != "" {
		snapshot, err := i.Snapshot(spaceID)
		if err != nil {
			return err
		}
		inSubtree, err := snapshot.WithinScope(data.ParentID, id)
		if err != nil {
			return err
		}
		if inSubtree {
			return apperrors.InvalidStatef("подразделение нельзя перенести в собственное поддерево")
		}
	}
	updMap := map[string]interface{}{
		"name":   data.Name,
		"code":   data.Code,
		"region": data.Region,
	}
	if data.ParentID != "" {
		updMap["parent_id"] = data.ParentID
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	i.ResetCache(spaceID)
	return nil
}

func (i *impl) Delete(spaceID, id string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFoundf("подразделение %v не найдено", id)
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		return err
	}
	i.GetLogger(spaceID).
		WithField("org_unit_id", id).
		Info("подразделение удалено вместе с дочерними")
	i.ResetCache(spaceID)
	return nil
}

func (i *impl) Get(spaceID, id string) (orgapimodels.OrgUnitView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return orgapimodels.OrgUnitView{}, err
	}
	if rec == nil {
		return orgapimodels.OrgUnitView{}, apperrors.NotFoundf("подразделение %v не найдено", id)
	}
	return orgapimodels.OrgUnitConvert(*rec), nil
}

func (i *impl) List(spaceID string) ([]orgapimodels.OrgUnitView, error) {
	list, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]orgapimodels.OrgUnitView, 0, len(list))
	for _, rec := range list {
		result = append(result, orgapimodels.OrgUnitConvert(rec))
	}
	return result, nil
}

func (i *impl) GetPath(spaceID, id string) (orgapimodels.OrgUnitPathView, error) {
	snapshot, err := i.Snapshot(spaceID)
	if err != nil {
		return orgapimodels.OrgUnitPathView{}, err
	}
	path, err := snapshot.GetPath(id)
	if err != nil {
		return orgapimodels.OrgUnitPathView{}, err
	}
	view := orgapimodels.OrgUnitPathView{
		Path: make([]orgapimodels.OrgUnitView, 0, len(path)),
	}
	for _, rec := range path {
		view.Path = append(view.Path, orgapimodels.OrgUnitConvert(rec))
	}
	return view, nil
}

func (i *impl) checkParent(spaceID string, data orgapimodels.OrgUnitData) error {
	expectedParentType, ok := data.Type.ParentType()
	if !ok {
		// корневой тип, родителя нет
		return nil
	}
	parent, err := i.store.GetByID(spaceID, data.ParentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperrors.NotFoundf("родительское подразделение %v не найдено", data.ParentID)
	}
	if parent.Type != expectedParentType {
		return apperrors.InvalidStatef("подразделение типа %v может находиться только под %v", data.Type.ToHuman(), expectedParentType.ToHuman())
	}
	return nil
}
