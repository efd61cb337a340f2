package orgstructload

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"site-tools-backend/db"
	"site-tools-backend/lib/apperrors"
	orgtreehandler "site-tools-backend/lib/org-tree"
	"site-tools-backend/lib/utils/lock"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const importLockWait = 10 * time.Second

// колонки листа: проектный офис, направление, проект, участок, код, регион
const (
	colPmo = iota
	colArea
	colProject
	colZone
	colCode
	colRegion
)

// ImportOrgStruct загружает оргструктуру пространства из XLSX. Каждая строка
// листа задаёт путь от проектного офиса до участка, промежуточные узлы
// создаются один раз. Импорты одного пространства выполняются строго
// последовательно.
func ImportOrgStruct(ctx context.Context, spaceID string, fileBody []byte) (created int, err error) {
	lockKey := fmt.Sprintf("org-struct-import-%s", spaceID)
	success, err := lock.WithDelay(ctx, lockKey, importLockWait, func() error {
		created, err = importOrgStruct(spaceID, fileBody)
		return err
	})
	if err != nil {
		return 0, err
	}
	if !success {
		return 0, apperrors.Conflictf("импорт оргструктуры уже выполняется")
	}
	return created, nil
}

func importOrgStruct(spaceID string, fileBody []byte) (created int, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBody))
	if err != nil {
		return 0, apperrors.InvalidStatef("не удалось открыть файл xlsx: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка чтения листа xlsx")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// повторный импорт того же файла не создаёт дубликатов:
		// карта путей заполняется уже существующими подразделениями
		unitMap, err := existingUnitPaths(tx, spaceID)
		if err != nil {
			return err
		}
		for i, row := range rows {
			if i == 0 {
				continue // заголовок
			}
			pmoName := colValue(row, colPmo)
			if pmoName == "" {
				continue
			}
			pmoID, err := saveUnit(tx, unitMap, spaceID, models.OrgUnitPmo, pmoName, nil, "", "", &created)
			if err != nil {
				return err
			}
			areaName := colValue(row, colArea)
			if areaName == "" {
				continue
			}
			areaID, err := saveUnit(tx, unitMap, spaceID, models.OrgUnitArea, fmt.Sprintf("%s/%s", pmoName, areaName), &pmoID, areaName, "", &created)
			if err != nil {
				return err
			}
			projectName := colValue(row, colProject)
			if projectName == "" {
				continue
			}
			projectID, err := saveUnit(tx, unitMap, spaceID, models.OrgUnitProject, fmt.Sprintf("%s/%s/%s", pmoName, areaName, projectName), &areaID, projectName, "", &created)
			if err != nil {
				return err
			}
			zoneName := colValue(row, colZone)
			if zoneName == "" {
				continue
			}
			zonePath := fmt.Sprintf("%s/%s/%s/%s", pmoName, areaName, projectName, zoneName)
			zoneRegion := colValue(row, colRegion)
			zoneID, err := saveUnit(tx, unitMap, spaceID, models.OrgUnitZone, zonePath, &projectID, zoneName, zoneRegion, &created)
			if err != nil {
				return err
			}
			if code := colValue(row, colCode); code != "" {
				if err := tx.Model(&dbmodels.OrgUnit{}).Where("id = ?", zoneID).Update("code", code).Error; err != nil {
					return errors.Wrap(err, "ошибка сохранения кода подразделения")
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	orgtreehandler.Instance.ResetCache(spaceID)
	return created, nil
}

// existingUnitPaths строит карту "путь узла -> идентификатор" по уже
// сохранённым подразделениям пространства
func existingUnitPaths(tx *gorm.DB, spaceID string) (map[string]string, error) {
	var units []dbmodels.OrgUnit
	err := tx.Model(dbmodels.OrgUnit{}).
		Where("space_id = ?", spaceID).
		Find(&units).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения существующих подразделений")
	}
	byID := make(map[string]dbmodels.OrgUnit, len(units))
	for _, unit := range units {
		byID[unit.ID] = unit
	}
	result := make(map[string]string, len(units))
	for _, unit := range units {
		path, err := unitPath(byID, unit)
		if err != nil {
			return nil, err
		}
		result[path] = unit.ID
	}
	return result, nil
}

// unitPath собирает путь узла от корня через имена родителей
func unitPath(byID map[string]dbmodels.OrgUnit, unit dbmodels.OrgUnit) (string, error) {
	names := []string{unit.Name}
	cur := unit
	for steps := 0; cur.ParentID != nil; steps++ {
		if steps > len(byID) {
			return "", apperrors.Corruptf("цикл родительских ссылок у подразделения %v", unit.ID)
		}
		parent, ok := byID[*cur.ParentID]
		if !ok {
			break
		}
		names = append([]string{parent.Name}, names...)
		cur = parent
	}
	return strings.Join(names, "/"), nil
}

func saveUnit(tx *gorm.DB, unitMap map[string]string, spaceID string, unitType models.OrgUnitType, path string, parentID *string, name, region string, created *int) (string, error) {
	if name == "" {
		name = path
	}
	if id, exist := unitMap[path]; exist {
		return id, nil
	}
	id := uuid.New().String()
	rec := dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
		Type:     unitType,
		Name:     name,
		Region:   region,
		ParentID: parentID,
	}
	if err := rec.Validate(); err != nil {
		return "", apperrors.InvalidStatef("%v", err)
	}
	if err := tx.Save(&rec).Error; err != nil {
		return "", errors.Wrapf(err, "ошибка сохранения подразделения %v", name)
	}
	unitMap[path] = id
	*created++
	return id, nil
}

func colValue(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
