package rbac

import (
	"site-tools-backend/models"
)

var (
	AdminRoleSet = []models.UserRole{models.SpaceAdminRole, models.PmoRole}
	DeciderRoleSet = []models.UserRole{
		models.SiteManagerRole, models.ProjectManagerRole, models.AreaManagerRole,
		models.FinanceManagerRole, models.PmoRole, models.SpaceAdminRole,
	}
	InitiatorRoleSet = []models.UserRole{
		models.ZoneManagerRole, models.SiteManagerRole, models.ProjectManagerRole,
		models.AreaManagerRole, models.PmoRole, models.SpaceAdminRole,
	}
	ReportRoleSet = []models.UserRole{
		models.ProjectManagerRole, models.AreaManagerRole, models.FinanceManagerRole,
		models.PmoRole, models.SpaceAdminRole,
	}
	AllRoles = []models.UserRole{
		models.ZoneManagerRole, models.SiteManagerRole, models.ProjectManagerRole,
		models.AreaManagerRole, models.FinanceManagerRole, models.PmoRole, models.SpaceAdminRole,
	}
)

func (i *impl) initRules() {
	i.addOrgStructRbac()
	i.addUsersRbac()
	i.addApprovalRequestRbac()
	i.addAttachmentsRbac()
	i.addReportsRbac()
	i.profile()
}

func (i *impl) addOrgStructRbac() {
	//VIEW
	i.RegisterRule(models.OrgStructResource, models.ViewAction, AllRoles, "/api/v1/space/org_struct/list [get]", nil)
	i.RegisterRule(models.OrgStructResource, models.ViewAction, AllRoles, "/api/v1/space/org_struct/{id} [get]", nil)
	i.RegisterRule(models.OrgStructResource, models.ViewAction, AllRoles, "/api/v1/space/org_struct/{id}/path [get]", nil)
	i.RegisterRule(models.OrgStructResource, models.ViewAction, AllRoles, "/api/v1/space/org_struct/scope [get]", nil)
	//MANAGE
	i.RegisterRule(models.OrgStructResource, models.ManageAction, AdminRoleSet, "/api/v1/space/org_struct [post]", nil)
	i.RegisterRule(models.OrgStructResource, models.ManageAction, AdminRoleSet, "/api/v1/space/org_struct/{id} [put]", nil)
	i.RegisterRule(models.OrgStructResource, models.ManageAction, AdminRoleSet, "/api/v1/space/org_struct/{id} [delete]", nil)
	i.RegisterRule(models.OrgStructResource, models.ManageAction, AdminRoleSet, "/api/v1/space/org_struct/import [post]", nil)
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.RegisterRule(models.UsersResource, models.ViewAction, AllRoles, "/api/v1/space/users/list [post]", nil)
	i.RegisterRule(models.UsersResource, models.ViewAction, AllRoles, "/api/v1/space/users/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.UsersResource, models.ManageAction, AdminRoleSet, "/api/v1/space/users [post]", nil)
	i.RegisterRule(models.UsersResource, models.ManageAction, AdminRoleSet, "/api/v1/space/users/{id} [put]", nil)
	i.RegisterRule(models.UsersResource, models.ManageAction, AdminRoleSet, "/api/v1/space/users/{id} [delete]", nil)
	i.RegisterRule(models.UsersResource, models.ManageAction, AdminRoleSet, "/api/v1/space/users/{id}/assignment/{org_unit_id} [put]", nil)
	i.RegisterRule(models.UsersResource, models.ManageAction, AdminRoleSet, "/api/v1/space/users/{id}/assignment/{org_unit_id} [delete]", nil)
}

func (i *impl) addApprovalRequestRbac() {
	//VIEW
	i.RegisterRule(models.ApprovalRequestResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/list [post]", nil)
	i.RegisterRule(models.ApprovalRequestResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/{id} [get]", nil)
	i.RegisterRule(models.ApprovalRequestResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/{id}/history [get]", nil)
	i.RegisterRule(models.ApprovalRequestResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/policy_check [post]", nil)
	// CREATE
	i.RegisterRule(models.ApprovalRequestResource, models.CreateAction, InitiatorRoleSet, "/api/v1/space/approval_request [post]", nil)
	//FLOW: решение по этапу доступно ролям-согласующим, принадлежность
	//этапа и скоуп проверяет движок цепочки
	i.RegisterRule(models.ApprovalRequestResource, models.DecideAction, DeciderRoleSet, "/api/v1/space/approval_request/{id}/approve [put]", nil)
	i.RegisterRule(models.ApprovalRequestResource, models.DecideAction, DeciderRoleSet, "/api/v1/space/approval_request/{id}/reject [put]", nil)
	// отменить может только инициатор, проверка в движке
	i.RegisterRule(models.ApprovalRequestResource, models.CancelAction, InitiatorRoleSet, "/api/v1/space/approval_request/{id}/cancel [put]", nil)
}

func (i *impl) addAttachmentsRbac() {
	i.RegisterRule(models.AttachmentResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/{id}/files [get]", nil)
	i.RegisterRule(models.AttachmentResource, models.ViewAction, AllRoles, "/api/v1/space/approval_request/file/{file_id} [get]", nil)
	i.RegisterRule(models.AttachmentResource, models.CreateAction, InitiatorRoleSet, "/api/v1/space/approval_request/{id}/upload [post]", nil)
	i.RegisterRule(models.AttachmentResource, models.DeleteAction, AdminRoleSet, "/api/v1/space/approval_request/file/{file_id} [delete]", nil)
}

func (i *impl) addReportsRbac() {
	i.RegisterRule(models.ReportResource, models.ExportAction, ReportRoleSet, "/api/v1/space/approval_request/export/xls [post]", nil)
	i.RegisterRule(models.ReportResource, models.ExportAction, ReportRoleSet, "/api/v1/space/approval_request/{id}/export/pdf [get]", nil)
}

func (i *impl) profile() {
	// EDIT
	i.RegisterRule(models.ProfileResource, models.EditAction, AllRoles, "/api/v1/user_profile [get]", nil)
	i.RegisterRule(models.ProfileResource, models.EditAction, AllRoles, "/api/v1/user_profile [put]", nil)
	i.RegisterRule(models.ProfileResource, models.EditAction, AllRoles, "/api/v1/user_profile/push [put]", nil)
}
