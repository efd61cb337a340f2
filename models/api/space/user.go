package spaceapimodels

import (
	"errors"

	"site-tools-backend/models"
	apimodels "site-tools-backend/models/api"
)

type CreateUser struct {
	Password string `json:"password"`
	SpaceUserCommonData
}

type UpdateUser struct {
	Password string `json:"password"`
	SpaceUserCommonData
}

type SpaceUser struct {
	ID string `json:"id"`
	SpaceUserCommonData
	HomeOrgUnitName string `json:"home_org_unit_name"` // Название основного подразделения
	RoleHuman       string `json:"role_human"`         // Роль для отображения
}

type SpaceUserCommonData struct {
	SpaceID       string          `json:"space_id"`
	Email         string          `json:"email"` // Email пользователя
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PhoneNumber   string          `json:"phone_number"`
	Role          models.UserRole `json:"role"`             // Роль пользователя
	HomeOrgUnitID string          `json:"home_org_unit_id"` // Основное подразделение
	AssignmentIDs []string        `json:"assignment_ids"`   // Дополнительные подразделения
	PushEnabled   bool            `json:"push_enabled"`     // Уведомления включены
}

func (r SpaceUserCommonData) Validate() error {
	if r.Email == "" {
		return errors.New("не указан емайл")
	}
	if r.FirstName == "" && r.LastName == "" {
		return errors.New("не указаны имя и фамилия")
	}
	if r.Role == "" {
		return errors.New("не указана роль")
	}
	if r.HomeOrgUnitID == "" {
		return errors.New("не указано основное подразделение")
	}
	return nil
}

type SpaceUserFilter struct {
	apimodels.Pagination
	Search string `json:"search"` // Поиск
}
