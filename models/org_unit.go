package models

type OrgUnitType string

const (
	OrgUnitPmo     OrgUnitType = "PMO"
	OrgUnitArea    OrgUnitType = "AREA"
	OrgUnitProject OrgUnitType = "PROJECT"
	OrgUnitZone    OrgUnitType = "ZONE"
)

var orgUnitHumanName = map[OrgUnitType]string{
	OrgUnitPmo:     "Проектный офис",
	OrgUnitArea:    "Направление",
	OrgUnitProject: "Проект",
	OrgUnitZone:    "Участок",
}

func (t OrgUnitType) ToHuman() string {
	if human, exist := orgUnitHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t OrgUnitType) IsRoot() bool {
	return t == OrgUnitPmo
}

func (t OrgUnitType) IsValid() bool {
	_, exist := orgUnitHumanName[t]
	return exist
}

var orgUnitParentType = map[OrgUnitType]OrgUnitType{
	OrgUnitArea:    OrgUnitPmo,
	OrgUnitProject: OrgUnitArea,
	OrgUnitZone:    OrgUnitProject,
}

// ParentType возвращает тип подразделения, под которым допустимо
// размещать подразделение данного типа. Для корневого типа ok == false.
func (t OrgUnitType) ParentType() (parent OrgUnitType, ok bool) {
	parent, ok = orgUnitParentType[t]
	return parent, ok
}
