package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// About 是“关于我们”区块的单例记录
type About struct {
	gorm.Model
	Title       string                      `gorm:"size:255;not null"`
	Description string                      `gorm:"type:text"`
	ImageURL    string                      `gorm:"size:1024"`
	Features    datatypes.JSONSlice[string] `gorm:"type:text"`
	ButtonText  string                      `gorm:"size:80"`
	ButtonURL   string                      `gorm:"size:1024"`
}

// TableName 返回自定义表名
func (About) TableName() string {
	return "about"
}
