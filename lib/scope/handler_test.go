package scopehandler

import (
	"testing"

	"site-tools-backend/lib/apperrors"
	orgtreesnapshot "site-tools-backend/lib/org-tree/snapshot"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	"site-tools-backend/models"
	orgapimodels "site-tools-backend/models/api/org"
	dbmodels "site-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

const testSpaceID = "space1"

type fakeOrgTree struct {
	snapshot *orgtreesnapshot.Snapshot
}

func (f fakeOrgTree) Snapshot(spaceID string) (*orgtreesnapshot.Snapshot, error) {
	return f.snapshot, nil
}

func (f fakeOrgTree) Create(spaceID string, data orgapimodels.OrgUnitData) (string, error) {
	panic("not implemented")
}

func (f fakeOrgTree) Update(spaceID, id string, data orgapimodels.OrgUnitData) error {
	panic("not implemented")
}

func (f fakeOrgTree) Delete(spaceID, id string) error { panic("not implemented") }

func (f fakeOrgTree) Get(spaceID, id string) (orgapimodels.OrgUnitView, error) {
	panic("not implemented")
}

func (f fakeOrgTree) List(spaceID string) ([]orgapimodels.OrgUnitView, error) {
	panic("not implemented")
}

func (f fakeOrgTree) GetPath(spaceID, id string) (orgapimodels.OrgUnitPathView, error) {
	panic("not implemented")
}

func (f fakeOrgTree) ResetCache(spaceID string) {}

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

var _ spaceusersstore.Provider = fakeUsersStore{}

func testUnit(id string, uType models.OrgUnitType, parentID string) dbmodels.OrgUnit {
	rec := dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   testSpaceID,
		},
		Type: uType,
		Name: id,
	}
	if parentID != "" {
		rec.ParentID = &parentID
	}
	return rec
}

func testUser(id string, role models.UserRole, homeUnitID string, assignmentIDs ...string) dbmodels.SpaceUser {
	rec := dbmodels.SpaceUser{
		BaseModel:     dbmodels.BaseModel{ID: id},
		SpaceID:       testSpaceID,
		Role:          role,
		HomeOrgUnitID: homeUnitID,
		IsActive:      true,
	}
	for _, unitID := range assignmentIDs {
		rec.Assignments = append(rec.Assignments, dbmodels.UserOrgAssignment{
			SpaceUserID: id,
			OrgUnitID:   unitID,
		})
	}
	return rec
}

func testHandler(t *testing.T, users ...dbmodels.SpaceUser) Provider {
	// P1 -> A1 -> J1 -> Z1,Z2; A1 -> J2; P1 -> A2 -> J3
	snapshot, err := orgtreesnapshot.NewSnapshot([]dbmodels.OrgUnit{
		testUnit("P1", models.OrgUnitPmo, ""),
		testUnit("A1", models.OrgUnitArea, "P1"),
		testUnit("A2", models.OrgUnitArea, "P1"),
		testUnit("J1", models.OrgUnitProject, "A1"),
		testUnit("J2", models.OrgUnitProject, "A1"),
		testUnit("J3", models.OrgUnitProject, "A2"),
		testUnit("Z1", models.OrgUnitZone, "J1"),
		testUnit("Z2", models.OrgUnitZone, "J1"),
	})
	require.Nil(t, err)
	usersMap := map[string]dbmodels.SpaceUser{}
	for _, user := range users {
		usersMap[user.ID] = user
	}
	return impl{
		orgTree:         fakeOrgTree{snapshot: snapshot},
		spaceUsersStore: fakeUsersStore{users: usersMap},
	}
}

func TestScope(t *testing.T) {
	t.Run("скоуп — объединение поддеревьев основного подразделения и назначений", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.ProjectManagerRole, "J1", "J3"))
		scope, err := handler.GetScope(testSpaceID, "u1")
		require.Nil(t, err)
		require.Len(t, scope, 4)
		for _, id := range []string{"J1", "Z1", "Z2", "J3"} {
			require.True(t, scope[id], id)
		}
		require.False(t, scope["J2"])
		require.False(t, scope["A1"])
	})

	t.Run("роль уровня пространства видит всё дерево", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.PmoRole, "P1"))
		scope, err := handler.GetScope(testSpaceID, "u1")
		require.Nil(t, err)
		require.Len(t, scope, 8)
	})

	t.Run("сужение скоупа выбранным подразделением", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.AreaManagerRole, "A1"))
		scope, err := handler.Narrow(testSpaceID, "u1", "J1")
		require.Nil(t, err)
		require.Len(t, scope, 3)
		for _, id := range []string{"J1", "Z1", "Z2"} {
			require.True(t, scope[id], id)
		}
	})

	t.Run("выбор предка оставляет доступной свою часть поддерева", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.ProjectManagerRole, "J1"))
		scope, err := handler.Narrow(testSpaceID, "u1", "A1")
		require.Nil(t, err)
		require.Len(t, scope, 3)
		for _, id := range []string{"J1", "Z1", "Z2"} {
			require.True(t, scope[id], id)
		}
		require.False(t, scope["J2"])
	})

	t.Run("выбор постороннего подразделения даёт пустой скоуп", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.AreaManagerRole, "A1"))
		scope, err := handler.Narrow(testSpaceID, "u1", "A2")
		require.Nil(t, err)
		require.Len(t, scope, 0)
	})

	t.Run("выбор несуществующего подразделения", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.AreaManagerRole, "A1"))
		_, err := handler.Narrow(testSpaceID, "u1", "X1")
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run("назначение на удалённое подразделение игнорируется", func(t *testing.T) {
		handler := testHandler(t, testUser("u1", models.SiteManagerRole, "Z1", "X1"))
		scope, err := handler.GetScope(testSpaceID, "u1")
		require.Nil(t, err)
		require.Len(t, scope, 1)
		require.True(t, scope["Z1"])
	})

	t.Run("неизвестный пользователь", func(t *testing.T) {
		handler := testHandler(t)
		_, err := handler.GetScope(testSpaceID, "u1")
		require.True(t, apperrors.IsNotFound(err))
	})
}
