package spacehandler

import (
	"fmt"

	"site-tools-backend/db"
	spacesettingsstore "site-tools-backend/lib/space/settings/store"
	spacestore "site-tools-backend/lib/space/store"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	authutils "site-tools-backend/lib/utils/auth-utils"
	"site-tools-backend/models"
	spaceapimodels "site-tools-backend/models/api/space"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateOrganizationSpace(request spaceapimodels.CreateOrganization) (spaceID string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceStore:         spacestore.NewInstance(db.DB),
		spaceUserStore:     spaceusersstore.NewInstance(db.DB),
		spaceSettingsStore: spacesettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceStore         spacestore.Provider
	spaceUserStore     spaceusersstore.Provider
	spaceSettingsStore spacesettingsstore.Provider
}

// CreateOrganizationSpace создаёт пространство организации: само
// пространство, корневое подразделение (проектный офис), администратора
// с основным подразделением в корне и дефолтные настройки.
func (i impl) CreateOrganizationSpace(request spaceapimodels.CreateOrganization) (spaceID string, err error) {
	space := dbmodels.Space{
		IsActive:         true,
		OrganizationName: request.OrganizationName,
		Inn:              request.Inn,
		Kpp:              request.Kpp,
		OGRN:             request.OGRN,
		FullName:         request.FullName,
		DirectorName:     request.DirectorName,
	}
	spaceID, err = i.spaceStore.CreateSpace(space)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания организации в space")
		return "", err
	}
	rootUnit := dbmodels.OrgUnit{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Type: models.OrgUnitPmo,
		Name: request.OrganizationName,
	}
	if err = db.DB.Save(&rootUnit).Error; err != nil {
		log.
			WithField("space_id", spaceID).
			WithError(err).
			Error("Ошибка создания корневого подразделения")
		return "", err
	}
	admin := dbmodels.SpaceUser{
		Password:      authutils.GetMD5Hash(request.AdminData.Password),
		FirstName:     request.AdminData.FirstName,
		LastName:      request.AdminData.LastName,
		Email:         request.AdminData.Email,
		IsActive:      true,
		PushEnabled:   true,
		PhoneNumber:   request.AdminData.PhoneNumber,
		SpaceID:       spaceID,
		Role:          models.SpaceAdminRole,
		HomeOrgUnitID: rootUnit.ID,
	}
	if _, err = i.spaceUserStore.Create(admin); err != nil {
		log.
			WithField("space_id", spaceID).
			WithError(err).
			Error("Ошибка создания администратора пространства")
		return "", err
	}
	for _, setting := range dbmodels.DefaultSettinsMap {
		setting.SpaceID = spaceID
		if err = i.spaceSettingsStore.Create(setting); err != nil {
			log.
				WithField("space_id", spaceID).
				WithField("setting_code", setting.Code).
				WithError(err).
				Error("Ошибка добавления настройки пространства")
			return "", err
		}
	}
	return spaceID, nil
}
