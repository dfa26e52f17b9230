package db

import "gorm.io/gorm"

// PortfolioItem 定义作品集条目
type PortfolioItem struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Category    string `gorm:"size:80;not null;index"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:1024"`
	ProjectURL  string `gorm:"size:1024"`
	Featured    bool   `gorm:"default:false;index"`
	SortOrder   int    `gorm:"default:0"`
}

// TableName 返回自定义表名
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
