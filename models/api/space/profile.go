package spaceapimodels

import "github.com/pkg/errors"

// Профиль текущего пользователя вместе с настройками уведомлений
type ProfileView struct {
	SpaceUser
	PushSettings []PushSettingView `json:"push_settings"` // Настройки уведомлений по событиям
}

type ProfileUpdateData struct {
	Password    string `json:"password"` // Новый пароль (пусто - без изменения)
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	PushEnabled bool   `json:"push_enabled"` // Уведомления включены
}

func (r ProfileUpdateData) Validate() error {
	if r.FirstName == "" && r.LastName == "" {
		return errors.New("не указаны имя и фамилия")
	}
	return nil
}

type UpdatePushSettings struct {
	Settings []PushSettingData `json:"settings"` // Значения настроек по событиям
}

func (r UpdatePushSettings) Validate() error {
	for _, setting := range r.Settings {
		if setting.Code == "" {
			return errors.New("не указан код события")
		}
	}
	return nil
}
