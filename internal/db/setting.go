package db

import "gorm.io/gorm"

// Setting 存储后台可配置的键值对，Category 用于分组（general/seo/appearance/footer...）。
type Setting struct {
	gorm.Model
	Key      string `gorm:"size:100;uniqueIndex;not null"`
	Value    string `gorm:"type:text"`
	Category string `gorm:"size:60;not null;default:general;index"`
}

// TableName 自定义表名以保持命名一致。
func (Setting) TableName() string {
	return "settings"
}

// Setting categories
const (
	SettingCategoryGeneral    = "general"
	SettingCategorySEO        = "seo"
	SettingCategoryAppearance = "appearance"
	SettingCategoryFooter     = "footer"
	SettingCategoryContact    = "contact"
	SettingCategorySocial     = "social"
)

// Well-known setting keys read by the public site.
const (
	SettingKeySiteName        = "site_name"
	SettingKeySiteTagline     = "site_tagline"
	SettingKeySiteDescription = "site_description"
	SettingKeySiteKeywords    = "site_keywords"
	SettingKeySiteLogoURL     = "site_logo_url"
	SettingKeySiteFaviconURL  = "site_favicon_url"
	SettingKeyFooterText      = "footer_text"
	SettingKeyContactEmail    = "contact_email"
	SettingKeyContactPhone    = "contact_phone"
	SettingKeyContactAddress  = "contact_address"
	SettingKeySocialTwitter   = "social_twitter"
	SettingKeySocialLinkedIn  = "social_linkedin"
	SettingKeySocialGitHub    = "social_github"
	SettingKeySocialInstagram = "social_instagram"
)
