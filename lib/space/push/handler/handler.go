package pushhandler

import (
	"time"

	"site-tools-backend/db"
	"site-tools-backend/lib/smtp"
	pushdatastore "site-tools-backend/lib/space/push/data-store"
	pushsettingsstore "site-tools-backend/lib/space/push/settings-store"
	spacesettingsstore "site-tools-backend/lib/space/settings/store"
	spaceusersstore "site-tools-backend/lib/space/users/store"
	connectionhub "site-tools-backend/lib/ws/hub/connection-hub"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"
	wsmodels "site-tools-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

// Диспетчер уведомлений. Отправка — fire-and-forget: ошибки доставки
// логируются и не влияют на вызвавшую операцию. Системные уведомления
// уходят в ws-канал, при отключённом пользователе откладываются и
// доставляются при следующем подключении.
type Provider interface {
	SendNotification(userID string, data models.NotificationData)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUserStore:     spaceusersstore.NewInstance(db.DB),
		pushSettingsStore:  pushsettingsstore.NewInstance(db.DB),
		pushDataStore:      pushdatastore.NewInstance(db.DB),
		spaceSettingsStore: spacesettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUserStore     spaceusersstore.Provider
	pushSettingsStore  pushsettingsstore.Provider
	pushDataStore      pushdatastore.Provider
	spaceSettingsStore spacesettingsstore.Provider
}

func (i impl) getLogger(userID, code string) *log.Entry {
	logger := log.
		WithField("user_id", userID).
		WithField("event_code", code)
	return logger
}

func (i impl) SendNotification(userID string, data models.NotificationData) {
	logger := i.getLogger(userID, string(data.Code))
	user, err := i.spaceUserStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя")
		return
	}
	if user == nil {
		logger.Error("пользователь не найден")
		return
	}
	if !user.PushEnabled {
		return
	}
	pushSetting, err := i.pushSettingsStore.GetByCode(userID, data.Code)
	if err != nil {
		logger.WithError(err).Error("ошибка получения настройки по событию")
		return
	}
	// при отсутсвии настройки событие считается включённым системно
	sendSystem := pushSetting == nil || (pushSetting.SystemValue != nil && *pushSetting.SystemValue)
	sendEmail := pushSetting != nil && pushSetting.EmailValue != nil && *pushSetting.EmailValue
	if sendSystem {
		i.sendSystem(userID, data, logger)
	}
	if sendEmail {
		i.sendEmail(*user, data, logger)
	}
}

func (i impl) sendSystem(userID string, data models.NotificationData, logger *log.Entry) {
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(userID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     time.Now().Format("02.01.2006 15:04:05"),
			Code:     string(data.Code),
			Msg:      data.Msg,
		})
		return
	}
	// пользователь не подключён, доставим при следующем подключении
	err := i.pushDataStore.Create(dbmodels.PushData{
		UserID: userID,
		Code:   data.Code,
		Msg:    data.Msg,
		Title:  data.Title,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения отложенного уведомления")
	}
}

func (i impl) sendEmail(user dbmodels.SpaceUser, data models.NotificationData, logger *log.Entry) {
	if user.Email == "" {
		return
	}
	sender, err := i.spaceSettingsStore.GetValueByCode(user.SpaceID, models.SpaceSenderEmail)
	if err != nil {
		logger.WithError(err).Error("ошибка получения адреса отправителя")
		return
	}
	if smtp.Instance == nil {
		return
	}
	err = smtp.Instance.SendEMail(sender, user.Email, data.Msg, data.Title)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления на почту")
	}
}
