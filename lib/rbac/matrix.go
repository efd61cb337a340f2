package rbac

import (
	"site-tools-backend/models"
)

// defaultMatrix — матрица разрешений по ролям. Роли уровня пространства
// (SPACE_ADMIN, PMO) в матрице не перечисляются: для них Can отвечает
// разрешением на любую известную пару ресурс/действие.
func defaultMatrix() map[models.UserRole]map[models.Resource][]models.Action {
	return map[models.UserRole]map[models.Resource][]models.Action{
		models.ZoneManagerRole: {
			models.OrgStructResource:       {models.ViewAction},
			models.UsersResource:           {models.ViewAction},
			models.ApprovalRequestResource: {models.ViewAction, models.CreateAction, models.CancelAction},
			models.AttachmentResource:      {models.ViewAction, models.CreateAction},
			models.ProfileResource:         {models.ViewAction, models.EditAction},
		},
		models.SiteManagerRole: {
			models.OrgStructResource:       {models.ViewAction},
			models.UsersResource:           {models.ViewAction},
			models.ApprovalRequestResource: {models.ViewAction, models.CreateAction, models.DecideAction, models.CancelAction},
			models.AttachmentResource:      {models.ViewAction, models.CreateAction},
			models.ProfileResource:         {models.ViewAction, models.EditAction},
		},
		models.ProjectManagerRole: {
			models.OrgStructResource:       {models.ViewAction},
			models.UsersResource:           {models.ViewAction},
			models.ApprovalRequestResource: {models.ViewAction, models.CreateAction, models.DecideAction, models.CancelAction},
			models.AttachmentResource:      {models.ViewAction, models.CreateAction, models.DeleteAction},
			models.ReportResource:          {models.ViewAction, models.ExportAction},
			models.ProfileResource:         {models.ViewAction, models.EditAction},
		},
		models.AreaManagerRole: {
			models.OrgStructResource:       {models.ViewAction},
			models.UsersResource:           {models.ViewAction},
			models.ApprovalRequestResource: {models.ViewAction, models.CreateAction, models.DecideAction, models.CancelAction},
			models.AttachmentResource:      {models.ViewAction, models.CreateAction, models.DeleteAction},
			models.ReportResource:          {models.ViewAction, models.ExportAction},
			models.ProfileResource:         {models.ViewAction, models.EditAction},
		},
		models.FinanceManagerRole: {
			models.OrgStructResource:       {models.ViewAction},
			models.UsersResource:           {models.ViewAction},
			models.ApprovalRequestResource: {models.ViewAction, models.DecideAction},
			models.AttachmentResource:      {models.ViewAction},
			models.ReportResource:          {models.ViewAction, models.ExportAction},
			models.ProfileResource:         {models.ViewAction, models.EditAction},
		},
	}
}
