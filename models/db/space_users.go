package dbmodels

import (
	"fmt"
	"time"

	"site-tools-backend/models"
	spaceapimodels "site-tools-backend/models/api/space"
)

type SpaceUser struct {
	BaseModel
	Password      string `gorm:"type:varchar(128)"`
	FirstName     string `gorm:"type:varchar(150)"`
	LastName      string `gorm:"type:varchar(150)"`
	Email         string `gorm:"type:varchar(255)"`
	IsActive      bool
	PushEnabled   bool
	PhoneNumber   string              `gorm:"type:varchar(15)"`
	SpaceID       string
	Role          models.UserRole     `gorm:"type:varchar(50)"`
	HomeOrgUnitID string              `gorm:"type:varchar(36);index"`
	HomeOrgUnit   *OrgUnit            `gorm:"foreignKey:HomeOrgUnitID"`
	Assignments   []UserOrgAssignment `gorm:"foreignKey:SpaceUserID"`
	LastLogin     time.Time
}

// UserOrgAssignment — дополнительное подразделение, назначенное пользователю
// помимо основного. Эффективный скоуп — объединение поддеревьев основного
// подразделения и всех назначений.
type UserOrgAssignment struct {
	BaseSpaceModel
	SpaceUserID string   `gorm:"type:varchar(36);uniqueIndex:idx_user_org"`
	OrgUnitID   string   `gorm:"type:varchar(36);uniqueIndex:idx_user_org"`
	OrgUnit     *OrgUnit `gorm:"foreignKey:OrgUnitID"`
}

func (r SpaceUser) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r SpaceUser) ToModel() spaceapimodels.SpaceUser {
	homeName := ""
	if r.HomeOrgUnit != nil {
		homeName = r.HomeOrgUnit.Name
	}
	return spaceapimodels.SpaceUser{
		ID: r.ID,
		SpaceUserCommonData: spaceapimodels.SpaceUserCommonData{
			SpaceID:       r.SpaceID,
			Email:         r.Email,
			FirstName:     r.FirstName,
			LastName:      r.LastName,
			PhoneNumber:   r.PhoneNumber,
			Role:          r.Role,
			HomeOrgUnitID: r.HomeOrgUnitID,
			AssignmentIDs: r.AssignmentIDs(),
			PushEnabled:   r.PushEnabled,
		},
		HomeOrgUnitName: homeName,
		RoleHuman:       r.Role.ToHuman(),
	}
}

// AssignmentIDs возвращает идентификаторы назначенных подразделений,
// сохраняя порядок назначения
func (r SpaceUser) AssignmentIDs() []string {
	result := make([]string, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		result = append(result, a.OrgUnitID)
	}
	return result
}
