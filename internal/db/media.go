package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Media types
const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeAudio    = "audio"
	MediaTypeDocument = "document"
	MediaTypeOther    = "other"
)

// MediaTypes lists every accepted media type.
var MediaTypes = []string{MediaTypeImage, MediaTypeVideo, MediaTypeAudio, MediaTypeDocument, MediaTypeOther}

// Media 描述媒体库中的一个文件，StorageKey 为空表示外部链接
type Media struct {
	gorm.Model
	Name       string `gorm:"size:255;not null"`
	Type       string `gorm:"size:20;not null;index"`
	MimeType   string `gorm:"size:120"`
	URL        string `gorm:"size:1024;not null"`
	Size       int64
	Width      int
	Height     int
	Alt        string                      `gorm:"size:255"`
	Tags       datatypes.JSONSlice[string] `gorm:"type:text"`
	StorageKey string                      `gorm:"size:512"`
	UploaderID *uint                       `gorm:"index"`
	Uploader   *User                       `gorm:"constraint:OnDelete:SET NULL"`
}

// TableName 指定自定义表名，避免复数化成 medias。
func (Media) TableName() string {
	return "media"
}
