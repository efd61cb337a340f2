package spaceusershander

import (
	"fmt"

	"site-tools-backend/db"
	"site-tools-backend/lib/apperrors"
	orgtreehandler "site-tools-backend/lib/org-tree"
	pushsettingsstore "site-tools-backend/lib/space/push/settings-store"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	authutils "site-tools-backend/lib/utils/auth-utils"
	spaceapimodels "site-tools-backend/models/api/space"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	CreateUser(request spaceapimodels.CreateUser) (id string, err error)
	UpdateUser(userID string, request spaceapimodels.UpdateUser) error
	DeleteUser(userID string) error
	GetListUsers(spaceID string, filter spaceapimodels.SpaceUserFilter) (usersList []spaceapimodels.SpaceUser, err error)
	GetByID(userID string) (user spaceapimodels.SpaceUser, err error)
	AddAssignment(spaceID, userID, orgUnitID string) error
	DeleteAssignment(spaceID, userID, orgUnitID string) error
	GetProfile(spaceID, userID string) (profile spaceapimodels.ProfileView, err error)
	UpdateProfile(userID string, request spaceapimodels.ProfileUpdateData) error
	UpdatePushSettings(spaceID, userID string, request spaceapimodels.UpdatePushSettings) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUserStore:    spaceusersstore.NewInstance(db.DB),
		pushSettingsStore: pushsettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUserStore    spaceusersstore.Provider
	pushSettingsStore pushsettingsstore.Provider
}

func (i impl) GetByID(userID string) (user spaceapimodels.SpaceUser, err error) {
	userDB, err := i.spaceUserStore.GetByID(userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка поиска пользователя")
		return spaceapimodels.SpaceUser{}, err
	}
	if userDB == nil {
		return spaceapimodels.SpaceUser{}, apperrors.NotFoundf("пользователь %v не найден", userID)
	}
	return userDB.ToModel(), nil
}

func (i impl) CreateUser(request spaceapimodels.CreateUser) (id string, err error) {
	if err := request.Validate(); err != nil {
		return "", apperrors.InvalidStatef("%v", err)
	}
	userExist, err := i.spaceUserStore.ExistByEmail(request.Email)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка проверки уже существующего пользователя space")
		return "", err
	}
	if userExist {
		return "", apperrors.InvalidStatef("пользователь с такой почтой уже существует")
	}
	if err := i.checkOrgUnit(request.SpaceID, request.HomeOrgUnitID); err != nil {
		return "", err
	}
	rec := dbmodels.SpaceUser{
		Password:      authutils.GetMD5Hash(request.Password),
		FirstName:     request.FirstName,
		LastName:      request.LastName,
		Email:         request.Email,
		IsActive:      true,
		PushEnabled:   request.PushEnabled,
		PhoneNumber:   request.PhoneNumber,
		SpaceID:       request.SpaceID,
		Role:          request.Role,
		HomeOrgUnitID: request.HomeOrgUnitID,
	}
	id, err = i.spaceUserStore.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка создания пользователя space")
		return "", err
	}
	for _, orgUnitID := range request.AssignmentIDs {
		if err := i.AddAssignment(request.SpaceID, id, orgUnitID); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (i impl) UpdateUser(userID string, request spaceapimodels.UpdateUser) error {
	user, err := i.GetByID(userID)
	if err != nil {
		return err
	}
	if request.HomeOrgUnitID != user.HomeOrgUnitID {
		if err := i.checkOrgUnit(user.SpaceID, request.HomeOrgUnitID); err != nil {
			return err
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"first_name":       request.FirstName,
			"last_name":        request.LastName,
			"phone_number":     request.PhoneNumber,
			"role":             request.Role,
			"home_org_unit_id": request.HomeOrgUnitID,
			"push_enabled":     request.PushEnabled,
			"email":            request.Email,
		}
		if request.Password != "" {
			updMap["password"] = authutils.GetMD5Hash(request.Password)
		}
		spaceUserStore := spaceusersstore.NewInstance(tx)
		err := spaceUserStore.Update(userID, updMap)
		if err != nil {
			log.
				WithField("request", fmt.Sprintf("%+v", request)).
				WithError(err).
				Error("ошибка обновления пользователя space")
			return err
		}
		return nil
	})

	return err
}

func (i impl) DeleteUser(userID string) error {
	err := i.spaceUserStore.Delete(userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка удаления пользователя space")
		return err
	}
	return nil
}

func (i impl) GetListUsers(spaceID string, filter spaceapimodels.SpaceUserFilter) (usersList []spaceapimodels.SpaceUser, err error) {
	var list []dbmodels.SpaceUser
	if filter.Search != "" {
		list, err = i.spaceUserStore.Search(spaceID, filter.Search)
	} else {
		page, limit := filter.GetPage()
		list, err = i.spaceUserStore.GetList(spaceID, page, limit)
	}
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка пользователей space")
		return nil, err
	}
	for _, user := range list {
		usersList = append(usersList, user.ToModel())
	}
	return usersList, nil
}

func (i impl) AddAssignment(spaceID, userID, orgUnitID string) error {
	if err := i.checkOrgUnit(spaceID, orgUnitID); err != nil {
		return err
	}
	rec := dbmodels.UserOrgAssignment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		SpaceUserID: userID,
		OrgUnitID:   orgUnitID,
	}
	_, err := i.spaceUserStore.AddAssignment(rec)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithField("org_unit_id", orgUnitID).
			WithError(err).
			Error("ошибка добавления назначения на подразделение")
		return err
	}
	return nil
}

func (i impl) DeleteAssignment(spaceID, userID, orgUnitID string) error {
	err := i.spaceUserStore.DeleteAssignment(spaceID, userID, orgUnitID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithField("org_unit_id", orgUnitID).
			WithError(err).
			Error("ошибка удаления назначения на подразделение")
		return err
	}
	return nil
}

func (i impl) GetProfile(spaceID, userID string) (profile spaceapimodels.ProfileView, err error) {
	user, err := i.GetByID(userID)
	if err != nil {
		return spaceapimodels.ProfileView{}, err
	}
	settings, err := i.pushSettingsStore.List(spaceID, userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка получения настроек уведомлений")
		return spaceapimodels.ProfileView{}, err
	}
	settingsList := make([]spaceapimodels.PushSettingView, 0, len(settings))
	for _, setting := range settings {
		settingsList = append(settingsList, setting.ToModelView())
	}
	return spaceapimodels.ProfileView{
		SpaceUser:    user,
		PushSettings: settingsList,
	}, nil
}

func (i impl) UpdateProfile(userID string, request spaceapimodels.ProfileUpdateData) error {
	user, err := i.GetByID(userID)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"first_name":   request.FirstName,
		"last_name":    request.LastName,
		"phone_number": request.PhoneNumber,
		"push_enabled": request.PushEnabled,
	}
	if request.Password != "" {
		updMap["password"] = authutils.GetMD5Hash(request.Password)
	}
	err = i.spaceUserStore.Update(user.ID, updMap)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка обновления профиля")
		return err
	}
	return nil
}

func (i impl) UpdatePushSettings(spaceID, userID string, request spaceapimodels.UpdatePushSettings) error {
	for _, setting := range request.Settings {
		updMap := map[string]interface{}{}
		if setting.Value.System != nil {
			updMap["system_value"] = *setting.Value.System
		}
		if setting.Value.Email != nil {
			updMap["email_value"] = *setting.Value.Email
		}
		if len(updMap) == 0 {
			continue
		}
		err := i.pushSettingsStore.Update(spaceID, userID, setting.Code, updMap)
		if err != nil {
			log.
				WithField("user_id", userID).
				WithField("code", setting.Code).
				WithError(err).
				Error("ошибка обновления настроек уведомлений")
			return err
		}
	}
	return nil
}

func (i impl) checkOrgUnit(spaceID, orgUnitID string) error {
	_, err := orgtreehandler.Instance.Get(spaceID, orgUnitID)
	return err
}
