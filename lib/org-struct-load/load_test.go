package orgstructload

import (
	"testing"

	"site-tools-backend/lib/apperrors"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func unitRec(id, name string, unitType models.OrgUnitType, parentID *string) dbmodels.OrgUnit {
	return dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   "space-1",
		},
		Type:     unitType,
		Name:     name,
		ParentID: parentID,
	}
}

func TestUnitPath(t *testing.T) {
	pmoID, areaID, projectID := "pmo-1", "area-1", "project-1"
	byID := map[string]dbmodels.OrgUnit{
		pmoID:     unitRec(pmoID, "ПО Север", models.OrgUnitPmo, nil),
		areaID:    unitRec(areaID, "Направление 1", models.OrgUnitArea, &pmoID),
		projectID: unitRec(projectID, "Проект А", models.OrgUnitProject, &areaID),
		"zone-1":  unitRec("zone-1", "Участок 3", models.OrgUnitZone, &projectID),
	}

	t.Run("путь собирается от корня через имена родителей", func(t *testing.T) {
		path, err := unitPath(byID, byID["zone-1"])
		require.NoError(t, err)
		require.Equal(t, "ПО Север/Направление 1/Проект А/Участок 3", path)
	})

	t.Run("путь корня — его имя", func(t *testing.T) {
		path, err := unitPath(byID, byID[pmoID])
		require.NoError(t, err)
		require.Equal(t, "ПО Север", path)
	})

	t.Run("цикл родительских ссылок", func(t *testing.T) {
		a, b := "a", "b"
		broken := map[string]dbmodels.OrgUnit{
			a: unitRec(a, "А", models.OrgUnitArea, &b),
			b: unitRec(b, "Б", models.OrgUnitArea, &a),
		}
		_, err := unitPath(broken, broken[a])
		require.Error(t, err)
		require.True(t, apperrors.IsCorrupt(err))
	})
}

func TestSaveUnitReusesExisting(t *testing.T) {
	pmoID := "pmo-1"
	unitMap := map[string]string{"ПО Север": pmoID}
	created := 0

	t.Run("повторный импорт не создаёт дубликат", func(t *testing.T) {
		id, err := saveUnit(nil, unitMap, "space-1", models.OrgUnitPmo, "ПО Север", nil, "", "", &created)
		require.NoError(t, err)
		require.Equal(t, pmoID, id)
		require.Equal(t, 0, created)
	})
}
