package dto

// SynthesizeRequest 语音合成请求，voice 为空时使用设置中的音色
type SynthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// VoicesResponse 可选音色
type VoicesResponse struct {
	Voices map[string]string `json:"voices"`
}

// TranscriptionResponse 转写结果
type TranscriptionResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}
