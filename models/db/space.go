package dbmodels

// Space — пространство строительной организации. Все данные
// (оргструктура, пользователи, заявки) принадлежат одному пространству.
type Space struct {
	BaseModel
	IsActive         bool
	OrganizationName string `gorm:"type:varchar(255)"` // Юридическое название компании
	Inn              string `gorm:"type:varchar(12)"`  // ИНН
	Kpp              string `gorm:"type:varchar(9)"`   // КПП
	OGRN             string `gorm:"type:varchar(15)"`  // ОГРН
	FullName         string `gorm:"type:varchar(255)"`
	DirectorName     string `gorm:"type:varchar(255)"`
}
