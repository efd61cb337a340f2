package models

type SpaceSettingCode string

const (
	SpaceSenderEmail  SpaceSettingCode = "SpaceSenderEmail"  // почта, с которой отправляются уведомления
	SpaceSupportEmail SpaceSettingCode = "SpaceSupportEmail" // почта тех поддержки
)
