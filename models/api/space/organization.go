package spaceapimodels

import "github.com/pkg/errors"

// Данные для создания пространства организации вместе с администратором
type CreateOrganization struct {
	OrganizationName string    `json:"organization_name"` // Юридическое название компании
	Inn              string    `json:"inn"`
	Kpp              string    `json:"kpp"`
	OGRN             string    `json:"ogrn"`
	FullName         string    `json:"full_name"`
	DirectorName     string    `json:"director_name"`
	AdminData        AdminData `json:"admin_data"` // Администратор пространства
}

type AdminData struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (r CreateOrganization) Validate() error {
	if r.OrganizationName == "" {
		return errors.New("не указано название организации")
	}
	if r.AdminData.Email == "" {
		return errors.New("не указан емайл администратора")
	}
	if r.AdminData.Password == "" {
		return errors.New("не указан пароль администратора")
	}
	return nil
}
