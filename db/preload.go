package db

import (
	pushsettingsstore "site-tools-backend/lib/space/push/settings-store"
	"site-tools-backend/models"
	dbmodels "site-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillSpaceSettings()
	addPushSettings()
}

func addPushSettings() {
	store := pushsettingsstore.NewInstance(DB)

	userList, err := store.GetUsersWithoutSettings()
	if err != nil {
		log.WithError(err).Error("ошибка добавления настроек пушей")
		return
	}

	value := false
	rec := dbmodels.SpacePushSetting{
		SystemValue: &value,
		EmailValue:  &value,
	}
	for _, user := range userList {
		rec.SpaceID = user.SpaceID
		rec.SpaceUserID = user.ID

		for key := range models.PushCodeMap {
			rec.Code = key
			err := store.Create(rec)
			if err != nil {
				log.WithError(err).Error("ошибка добавления настроек пушей")
				return
			}
		}
	}
}
