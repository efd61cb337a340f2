package dbmodels

import (
	"site-tools-backend/models"
	spaceapimodels "site-tools-backend/models/api/space"
)

type SpaceSetting struct {
	BaseModel
	SpaceID string                  `gorm:"type:varchar(36);index:idx_setting_code"`
	Name    string                  `gorm:"type:varchar(255)"`
	Code    models.SpaceSettingCode `gorm:"type:varchar(255);index:idx_setting_code"`
	Value   string                  `gorm:"type:varchar(500)"`
}

func (r SpaceSetting) ToModelView() spaceapimodels.SpaceSettingView {
	return spaceapimodels.SpaceSettingView{
		ID:      r.ID,
		SpaceID: r.SpaceID,
		Name:    r.Name,
		Code:    r.Code,
		Value:   r.Value,
	}
}

var DefaultSpaceSenderEmail = SpaceSetting{
	Name:  "почта, с которой отправляются уведомления",
	Code:  models.SpaceSenderEmail,
	Value: "",
}

var DefaultSpaceSupportEmail = SpaceSetting{
	Name:  "почта, тех поддержки",
	Code:  models.SpaceSupportEmail,
	Value: "",
}

var DefaultSettinsMap = map[models.SpaceSettingCode]SpaceSetting{
	models.SpaceSenderEmail:  DefaultSpaceSenderEmail,
	models.SpaceSupportEmail: DefaultSpaceSupportEmail,
}
