package approvalnotify

import (
	"site-tools-backend/db"
	approvalchainhandler "site-tools-backend/lib/approval/chain"
	scopehandler "site-tools-backend/lib/scope"
	pushhandler "site-tools-backend/lib/space/push/handler"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// NewInstance собирает диспетчер уведомлений движка согласования:
// о новом этапе узнают согласующие с требуемой ролью, чей скоуп покрывает
// подразделение заявки, о результате — инициатор.
func NewInstance() approvalchainhandler.Notifier {
	return impl{
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUsersStore spaceusersstore.Provider
}

func (i impl) getLogger(req dbmodels.ApprovalRequest) *log.Entry {
	logger := log.
		WithField("space_id", req.SpaceID).
		WithField("approval_request_id", req.ID)
	return logger
}

func (i impl) DecisionRequired(req dbmodels.ApprovalRequest, step dbmodels.ApprovalStep) {
	logger := i.getLogger(req)
	candidates, err := i.spaceUsersStore.ListByRole(req.SpaceID, step.RequiredRole)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка согласующих")
		return
	}
	data := models.GetPushApprovalRequest(req.Title, req.Amount)
	for _, candidate := range candidates {
		inScope, err := scopehandler.Instance.InScope(req.SpaceID, candidate.ID, req.OrgUnitID)
		if err != nil {
			logger.WithError(err).WithField("user_id", candidate.ID).Error("ошибка проверки скоупа согласующего")
			continue
		}
		if !inScope {
			continue
		}
		pushhandler.Instance.SendNotification(candidate.ID, data)
	}
}

func (i impl) Approved(req dbmodels.ApprovalRequest, approverName string) {
	pushhandler.Instance.SendNotification(req.InitiatorID, models.GetPushApprovalApproved(req.Title, approverName))
}

func (i impl) Rejected(req dbmodels.ApprovalRequest, approverName, comment string) {
	pushhandler.Instance.SendNotification(req.InitiatorID, models.GetPushApprovalRejected(req.Title, approverName, comment))
}

func (i impl) Cancelled(req dbmodels.ApprovalRequest) {
	pushhandler.Instance.SendNotification(req.InitiatorID, models.GetPushApprovalCancelled(req.Title))
}
