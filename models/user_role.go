package models

type UserRole string

const (
	ZoneManagerRole    UserRole = "ZONE_MANAGER"
	SiteManagerRole    UserRole = "SITE_MANAGER"
	ProjectManagerRole UserRole = "PROJECT_MANAGER"
	AreaManagerRole    UserRole = "AREA_MANAGER"
	FinanceManagerRole UserRole = "FINANCE_MANAGER"
	PmoRole            UserRole = "PMO"
	SpaceAdminRole     UserRole = "SPACE_ADMIN_ROLE"
)

var roleHumanName = map[UserRole]string{
	ZoneManagerRole:    "Начальник участка",
	SiteManagerRole:    "Начальник стройплощадки",
	ProjectManagerRole: "Руководитель проекта",
	AreaManagerRole:    "Руководитель направления",
	FinanceManagerRole: "Финансовый менеджер",
	PmoRole:            "Проектный офис",
	SpaceAdminRole:     "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsSpaceAdmin() bool {
	return r == SpaceAdminRole
}

// роли, для которых таблица разрешений не проверяется (проверка скоупа выполняется всегда)
func (r UserRole) IsWildcard() bool {
	return r == SpaceAdminRole || r == PmoRole
}
