package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"104857600" env:"APP_BODY_LIMIT"` // 100MB
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"site-tools" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"site-tools" env:"S3_BUCKET_NAME"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Email            string `default:"" env:"ADMIN_EMAIL"`
		Password         string `default:"" env:"ADMIN_PASSWORD"`
		FirstName        string `default:"" env:"ADMIN_FIRST_NAME"`
		LastName         string `default:"" env:"ADMIN_LAST_NAME"`
		PhoneNumber      string `default:"" env:"ADMIN_PHONE_NUMBER"`
		OrganizationName string `default:"" env:"ADMIN_ORGANIZATION_NAME"`
	}
	// Лимиты согласования по ролям, валюта не учитывается.
	// Значения выше уровня FINANCE согласует только проектный офис.
	Approval struct {
		ZoneLimit    int64 `default:"1000" env:"APPROVAL_ZONE_LIMIT"`
		SiteLimit    int64 `default:"3000" env:"APPROVAL_SITE_LIMIT"`
		ProjectLimit int64 `default:"5000" env:"APPROVAL_PROJECT_LIMIT"`
		AreaLimit    int64 `default:"20000" env:"APPROVAL_AREA_LIMIT"`
		FinanceLimit int64 `default:"50000" env:"APPROVAL_FINANCE_LIMIT"`
	}
	ErrNotifyAddr string `default:"" env:"ERR_NOTIFY_ADDR"`
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
