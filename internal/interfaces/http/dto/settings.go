package dto

import (
	"time"

	"ghostwriter-api/internal/application/settings"
	"ghostwriter-api/internal/domain/entity"
)

// UpdateSettingsRequest 更新设置，空值回退默认
type UpdateSettingsRequest struct {
	PromptTemplate *string `json:"prompt_template"`
	TTSVoice       *string `json:"tts_voice"`
}

// ToUpdate 转换为设置更新
func (r *UpdateSettingsRequest) ToUpdate() settings.Update {
	return settings.Update{PromptTemplate: r.PromptTemplate, TTSVoice: r.TTSVoice}
}

// SettingsResponse 设置响应
type SettingsResponse struct {
	ID             string     `json:"id"`
	PromptTemplate string     `json:"prompt_template"`
	TTSVoice       string     `json:"tts_voice"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ToSettingsResponse 转换设置
func ToSettingsResponse(s *entity.Settings) *SettingsResponse {
	resp := &SettingsResponse{
		ID:             s.ID,
		PromptTemplate: s.Template(),
		TTSVoice:       s.Voice(),
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
