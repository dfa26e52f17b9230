package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type settingRequest struct {
	Key      string `json:"key" binding:"required,max=100,setting_key"`
	Value    string `json:"value"`
	Category string `json:"category" binding:"max=60"`
}

func (r settingRequest) input() service.SettingInput {
	return service.SettingInput{Key: r.Key, Value: r.Value, Category: r.Category}
}

type bulkSettingsRequest struct {
	Settings []settingRequest `json:"settings" binding:"required,min=1,dive"`
}

// ListSettings 返回设置列表及按分类分组的键值视图
func (a *API) ListSettings(c *gin.Context) {
	items, err := a.settings.List(c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	grouped := make(map[string]map[string]string)
	for _, item := range items {
		if grouped[item.Category] == nil {
			grouped[item.Category] = make(map[string]string)
		}
		grouped[item.Category][item.Key] = item.Value
	}

	respondOK(c, gin.H{
		"items":   mapItems(items, settingPayload),
		"grouped": grouped,
	})
}

// GetSetting returns a setting by key.
func (a *API) GetSetting(c *gin.Context) {
	item, err := a.settings.Get(strings.TrimSpace(c.Param("key")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settingPayload(item))
}

// UpsertSetting 写入单个设置项
func (a *API) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.settings.Upsert(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settingPayload(item))
}

// BulkUpsertSettings writes every setting in one transaction.
func (a *API) BulkUpsertSettings(c *gin.Context) {
	var req bulkSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	inputs := make([]service.SettingInput, 0, len(req.Settings))
	for _, setting := range req.Settings {
		inputs = append(inputs, setting.input())
	}

	items, err := a.settings.BulkUpsert(inputs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(items, settingPayload))
}

// DeleteSetting 删除设置项
func (a *API) DeleteSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if err := a.settings.Delete(key); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"key": key, "deleted": true})
}
