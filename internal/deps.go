package internal

import (
	"procureapp/accounts-api/config"
	"procureapp/accounts-api/internal/account"
	"procureapp/accounts-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Accounts *account.Service
	Sessions *security.Sessions
	Config   *config.Config
}
