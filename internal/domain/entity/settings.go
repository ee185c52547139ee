package entity

import "time"

const (
	// SettingsID 全局唯一设置记录 ID
	SettingsID = "default"
	// DefaultTTSVoice 默认朗读音色
	DefaultTTSVoice = "pm_alex"
)

// Settings 全局设置
type Settings struct {
	ID             string    `json:"id" gorm:"type:varchar(32);primaryKey"`
	PromptTemplate *string   `json:"prompt_template" gorm:"type:text"`
	TTSVoice       string    `json:"tts_voice" gorm:"column:tts_voice;type:varchar(64);not null;default:'pm_alex'"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings 返回未持久化时的默认设置
func DefaultSettings() *Settings {
	return &Settings{
		ID:       SettingsID,
		TTSVoice: DefaultTTSVoice,
	}
}

// Template 返回自定义模板，未设置或为空时返回空串
func (s *Settings) Template() string {
	if s == nil || s.PromptTemplate == nil {
		return ""
	}
	return *s.PromptTemplate
}

// Voice 返回朗读音色，未设置时回退默认
func (s *Settings) Voice() string {
	if s == nil || s.TTSVoice == "" {
		return DefaultTTSVoice
	}
	return s.TTSVoice
}
