package dao

import (
	"github.com/ego-component/egorm"
)

// InitTables 初始化表结构
func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&UserPreference{},
		&ChannelIdentifier{},
	)
}
