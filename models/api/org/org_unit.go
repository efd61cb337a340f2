package orgapimodels

import (
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	"github.com/pkg/errors"
)

type OrgUnitData struct {
	Type     models.OrgUnitType `json:"type"`      // Тип подразделения (PMO/AREA/PROJECT/ZONE)
	Name     string             `json:"name"`      // Название
	Code     string             `json:"code"`      // Код подразделения
	Region   string             `json:"region"`    // Регион
	ParentID string             `json:"parent_id"` // Родительское подразделение
}

func (d OrgUnitData) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	if !d.Type.IsValid() {
		return errors.Errorf("неизвестный тип подразделения: %v", d.Type)
	}
	if !d.Type.IsRoot() && d.ParentID == "" {
		return errors.New("не указано родительское подразделение")
	}
	if d.Type.IsRoot() && d.ParentID != "" {
		return errors.New("у проектного офиса не может быть родительского подразделения")
	}
	return nil
}

type OrgUnitView struct {
	OrgUnitData
	ID        string `json:"id"`
	TypeHuman string `json:"type_human"` // Тип подразделения для отображения
}

func OrgUnitConvert(rec dbmodels.OrgUnit) OrgUnitView {
	parentID := ""
	if rec.ParentID != nil {
		parentID = *rec.ParentID
	}
	return OrgUnitView{
		OrgUnitData: OrgUnitData{
			Type:     rec.Type,
			Name:     rec.Name,
			Code:     rec.Code,
			Region:   rec.Region,
			ParentID: parentID,
		},
		ID:        rec.ID,
		TypeHuman: rec.Type.ToHuman(),
	}
}

// Путь до подразделения от корня дерева
type OrgUnitPathView struct {
	Path []OrgUnitView `json:"path"`
}

type ScopeView struct {
	UnitIDs []string `json:"unit_ids"` // Подразделения, доступные пользователю
}
