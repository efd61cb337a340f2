package models

type RbacFunc func(spaceID, userID string, role UserRole, path string) bool

// Resource и Action — закрытые перечисления: значение вне списка не
// расширяет права, проверка для него всегда отвечает отказом.

type Resource string

const (
	OrgStructResource       Resource = "ORG_STRUCT"
	UsersResource           Resource = "USERS"
	ApprovalRequestResource Resource = "APPROVAL_REQUEST"
	AttachmentResource      Resource = "ATTACHMENT"
	ReportResource          Resource = "REPORT"
	ProfileResource         Resource = "PROFILE"
)

type Action string

const (
	ViewAction   Action = "VIEW"
	CreateAction Action = "CREATE"
	EditAction   Action = "EDIT"
	DeleteAction Action = "DELETE"
	DecideAction Action = "DECIDE"
	CancelAction Action = "CANCEL"
	ExportAction Action = "EXPORT"
	ManageAction Action = "MANAGE"
)

var knownResources = map[Resource]bool{
	OrgStructResource:       true,
	UsersResource:           true,
	ApprovalRequestResource: true,
	AttachmentResource:      true,
	ReportResource:          true,
	ProfileResource:         true,
}

var knownActions = map[Action]bool{
	ViewAction:   true,
	CreateAction: true,
	EditAction:   true,
	DeleteAction: true,
	DecideAction: true,
	CancelAction: true,
	ExportAction: true,
	ManageAction: true,
}

func (r Resource) IsValid() bool {
	return knownResources[r]
}

func (a Action) IsValid() bool {
	return knownActions[a]
}
