package orgtreesnapshot

import (
	"testing"

	"site-tools-backend/lib/apperrors"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testUnit(id string, uType models.OrgUnitType, parentID string) dbmodels.OrgUnit {
	rec := dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   "space1",
		},
		Type: uType,
		Name: id,
	}
	if parentID != "" {
		rec.ParentID = &parentID
	}
	return rec
}

func testTree(t *testing.T) *Snapshot {
	// P1 -> A1 -> J1 -> Z1,Z2; A1 -> J2; P1 -> A2
	snapshot, err := NewSnapshot([]dbmodels.OrgUnit{
		testUnit("P1", models.OrgUnitPmo, ""),
		testUnit("A1", models.OrgUnitArea, "P1"),
		testUnit("A2", models.OrgUnitArea, "P1"),
		testUnit("J1", models.OrgUnitProject, "A1"),
		testUnit("J2", models.OrgUnitProject, "A1"),
		testUnit("Z1", models.OrgUnitZone, "J1"),
		testUnit("Z2", models.OrgUnitZone, "J1"),
	})
	require.Nil(t, err)
	return snapshot
}

func TestSnapshot(t *testing.T) {
	t.Run("поддерево содержит корень и всех потомков", func(t *testing.T) {
		snapshot := testTree(t)
		subtree, err := snapshot.GetSubtreeIDs("A1")
		require.Nil(t, err)
		require.Len(t, subtree, 5)
		for _, id := range []string{"A1", "J1", "J2", "Z1", "Z2"} {
			require.True(t, subtree[id], id)
		}
		require.False(t, subtree["A2"])
		require.False(t, subtree["P1"])
	})

	t.Run("поддерево листа содержит только лист", func(t *testing.T) {
		snapshot := testTree(t)
		subtree, err := snapshot.GetSubtreeIDs("Z1")
		require.Nil(t, err)
		require.Len(t, subtree, 1)
		require.True(t, subtree["Z1"])
	})

	t.Run("предки идут от корня, путь заканчивается самим узлом", func(t *testing.T) {
		snapshot := testTree(t)
		ancestors, err := snapshot.GetAncestors("Z1")
		require.Nil(t, err)
		require.Len(t, ancestors, 3)
		require.Equal(t, "P1", ancestors[0].ID)
		require.Equal(t, "A1", ancestors[1].ID)
		require.Equal(t, "J1", ancestors[2].ID)

		path, err := snapshot.GetPath("Z1")
		require.Nil(t, err)
		require.Len(t, path, 4)
		for idx, rec := range ancestors {
			require.Equal(t, rec.ID, path[idx].ID)
		}
		require.Equal(t, "Z1", path[3].ID)
	})

	t.Run("у корня нет предков", func(t *testing.T) {
		snapshot := testTree(t)
		ancestors, err := snapshot.GetAncestors("P1")
		require.Nil(t, err)
		require.Len(t, ancestors, 0)
	})

	t.Run("WithinScope учитывает сам корень скоупа", func(t *testing.T) {
		snapshot := testTree(t)
		ok, err := snapshot.WithinScope("A1", "A1")
		require.Nil(t, err)
		require.True(t, ok)

		ok, err = snapshot.WithinScope("Z2", "A1")
		require.Nil(t, err)
		require.True(t, ok)

		ok, err = snapshot.WithinScope("A2", "A1")
		require.Nil(t, err)
		require.False(t, ok)

		// вверх по дереву скоуп не распространяется
		ok, err = snapshot.WithinScope("P1", "A1")
		require.Nil(t, err)
		require.False(t, ok)
	})

	t.Run("неизвестное подразделение", func(t *testing.T) {
		snapshot := testTree(t)
		_, err := snapshot.GetSubtreeIDs("X1")
		require.True(t, apperrors.IsNotFound(err))

		_, err = snapshot.GetAncestors("X1")
		require.True(t, apperrors.IsNotFound(err))

		_, err = snapshot.WithinScope("Z1", "X1")
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run("ссылка на отсутствующего родителя", func(t *testing.T) {
		_, err := NewSnapshot([]dbmodels.OrgUnit{
			testUnit("A1", models.OrgUnitArea, "P1"),
		})
		require.True(t, apperrors.IsCorrupt(err))
	})

	t.Run("цикл обнаруживается при обходе предков", func(t *testing.T) {
		// A1 <-> A2 ссылаются друг на друга
		snapshot, err := NewSnapshot([]dbmodels.OrgUnit{
			testUnit("A1", models.OrgUnitArea, "A2"),
			testUnit("A2", models.OrgUnitArea, "A1"),
		})
		require.Nil(t, err)

		_, err = snapshot.GetAncestors("A1")
		require.True(t, apperrors.IsCorrupt(err))

		_, err = snapshot.GetSubtreeIDs("A1")
		require.True(t, apperrors.IsCorrupt(err))
	})
}
