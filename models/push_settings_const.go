package models

import "fmt"

type SpacePushSettingCode string

type PushTpl struct {
	Name  string
	Title string
	Msg   string
}

var PushCodeMap = map[SpacePushSettingCode]PushTpl{
	PushApprovalRequest:   {Name: "Поступила заявка на согласование", Title: "Новая заявка на согласование", Msg: "Заявка «%v» на сумму %v ожидает вашего решения."},
	PushApprovalApproved:  {Name: "Согласование заявки", Title: "Заявка согласована", Msg: "Заявка «%v» была согласована пользователем %v."},
	PushApprovalRejected:  {Name: "Отклонение заявки", Title: "Заявка отклонена", Msg: "Заявка «%v» была отклонена пользователем %v. Причина: %v."},
	PushApprovalCancelled: {Name: "Отмена заявки", Title: "Заявка отменена", Msg: "Заявка «%v» была отменена инициатором."},
}

const (
	PushApprovalRequest   SpacePushSettingCode = "PushApprovalRequest"
	PushApprovalApproved  SpacePushSettingCode = "PushApprovalApproved"
	PushApprovalRejected  SpacePushSettingCode = "PushApprovalRejected"
	PushApprovalCancelled SpacePushSettingCode = "PushApprovalCancelled"
)

type NotificationData struct {
	Code  SpacePushSettingCode
	Msg   string
	Title string
}

func GetPushApprovalRequest(requestName string, amount int64) NotificationData {
	code := PushApprovalRequest
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestName, amount),
	}
}

func GetPushApprovalApproved(requestName, approverName string) NotificationData {
	code := PushApprovalApproved
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestName, approverName),
	}
}

func GetPushApprovalRejected(requestName, approverName, comment string) NotificationData {
	code := PushApprovalRejected
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestName, approverName, comment),
	}
}

func GetPushApprovalCancelled(requestName string) NotificationData {
	code := PushApprovalCancelled
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestName),
	}
}
