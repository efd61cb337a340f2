package dbmodels

import (
	"site-tools-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrgUnit — узел оргструктуры. Дерево хранится плоским списком со ссылкой
// на родителя, узлы никогда не вкладываются друг в друга при сохранении.
type OrgUnit struct {
	BaseSpaceModel
	Type     models.OrgUnitType `gorm:"type:varchar(20)"`
	Name     string             `gorm:"type:varchar(255)"`
	Code     string             `gorm:"type:varchar(50);index"`
	Region   string             `gorm:"type:varchar(255)"`
	ParentID *string            `gorm:"type:varchar(36);index"`
	Parent   *OrgUnit           `gorm:"foreignKey:ParentID"`
}

func (u *OrgUnit) AfterDelete(tx *gorm.DB) (err error) {
	if u.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("parent_id = ?", u.ID).Delete(&OrgUnit{})
	return
}

func (u *OrgUnit) Validate() error {
	if err := u.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if u.Name == "" {
		return errors.New("не указано название подразделения")
	}
	if !u.Type.IsValid() {
		return errors.Errorf("неизвестный тип подразделения: %v", u.Type)
	}
	if u.Type.IsRoot() && u.ParentID != nil {
		return errors.New("у проектного офиса не может быть родительского подразделения")
	}
	if !u.Type.IsRoot() && u.ParentID == nil {
		return errors.New("не указано родительское подразделение")
	}
	return nil
}
