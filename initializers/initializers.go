package initializers

import (
	"context"

	"site-tools-backend/config"
	"site-tools-backend/db"
	"site-tools-backend/fiberlog"
	approvalchainhandler "site-tools-backend/lib/approval/chain"
	approvalnotify "site-tools-backend/lib/approval/notify"
	approvalpolicy "site-tools-backend/lib/approval/policy"
	xlsexport "site-tools-backend/lib/export/xls"
	filestorage "site-tools-backend/lib/file-storage"
	orgtreehandler "site-tools-backend/lib/org-tree"
	"site-tools-backend/lib/rbac"
	scopehandler "site-tools-backend/lib/scope"
	spacehandler "site-tools-backend/lib/space/handler"
	pushhandler "site-tools-backend/lib/space/push/handler"
	spacesettingshandler "site-tools-backend/lib/space/settings/handler"
	spaceusershander "site-tools-backend/lib/space/users/hander"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	connectionhub "site-tools-backend/lib/ws/hub/connection-hub"
	"site-tools-backend/models"
	spaceapimodels "site-tools-backend/models/api/space"
	s3client "site-tools-backend/s3"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewInstance(s3client.Client, db.DB)
	orgtreehandler.NewHandler()
	scopehandler.NewHandler()
	rbac.NewHandler()
	approvalpolicy.NewHandler(approvalTable())
	xlsexport.NewHandler()
	pushhandler.NewHandler()
	spaceusershander.NewHandler()
	spacesettingshandler.NewHandler()
	spacehandler.NewHandler()
	approvalchainhandler.NewHandler(approvalnotify.NewInstance())
	addDefaultSpace()
}

// approvalTable собирает таблицу лимитов согласования из конфигурации.
// Уровни идут от младшего к старшему, проектный офис без лимита.
func approvalTable() approvalpolicy.Table {
	limits := config.Conf.Approval
	table, err := approvalpolicy.NewTable([]approvalpolicy.Level{
		{Role: models.ZoneManagerRole, Default: models.LimitOf(limits.ZoneLimit)},
		{Role: models.SiteManagerRole, Default: models.LimitOf(limits.SiteLimit)},
		{Role: models.ProjectManagerRole, Default: models.LimitOf(limits.ProjectLimit)},
		{Role: models.AreaManagerRole, Default: models.LimitOf(limits.AreaLimit)},
		{Role: models.FinanceManagerRole, Default: models.LimitOf(limits.FinanceLimit)},
		{Role: models.PmoRole, Default: models.Unlimited()},
	})
	if err != nil {
		panic(err.Error())
	}
	return table
}

// addDefaultSpace создаёт пространство организации из конфигурации,
// если администратор с указанной почтой ещё не заведён
func addDefaultSpace() {
	if config.Conf.Admin.Email == "" {
		log.Warn("дефолтное пространство не добавлено, отсутвует настройка ADMIN_EMAIL")
		return
	}
	userStore := spaceusersstore.NewInstance(db.DB)
	exist, err := userStore.ExistByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления дефолтного пространства")
		return
	}
	if exist {
		return
	}
	_, err = spacehandler.Instance.CreateOrganizationSpace(spaceapimodels.CreateOrganization{
		OrganizationName: config.Conf.Admin.OrganizationName,
		AdminData: spaceapimodels.AdminData{
			Email:       config.Conf.Admin.Email,
			Password:    config.Conf.Admin.Password,
			FirstName:   config.Conf.Admin.FirstName,
			LastName:    config.Conf.Admin.LastName,
			PhoneNumber: config.Conf.Admin.PhoneNumber,
		},
	})
	if err != nil {
		log.WithError(err).Error("ошибка добавления дефолтного пространства")
	}
}
