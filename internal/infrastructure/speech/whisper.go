// Package speech 提供语音转写与语音合成的外部服务客户端
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ghostwriter-api/internal/config"
	workflowport "ghostwriter-api/internal/workflow/port"
	"ghostwriter-api/pkg/metrics"
	"ghostwriter-api/pkg/tracer"
)

var _ workflowport.Transcriber = (*WhisperTranscriber)(nil)

// WhisperTranscriber 基于 OpenAI 音频转写接口
type WhisperTranscriber struct {
	client   openai.Client
	model    string
	language string
}

// NewWhisperTranscriber 创建转写客户端，未配置 API Key 时返回错误
func NewWhisperTranscriber(cfg *config.TranscriptionConfig) (*WhisperTranscriber, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("transcription api key not configured")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	return &WhisperTranscriber{
		client:   openai.NewClient(opts...),
		model:    model,
		language: cfg.Language,
	}, nil
}

// Transcribe 上传音频并返回识别文本
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	ctx, span := tracer.Start(ctx, "speech.Transcribe")
	defer span.End()

	if filename == "" {
		filename = "audio.webm"
	}
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, ""),
		Model: openai.AudioModel(w.model),
	}
	if w.language != "" {
		params.Language = openai.String(w.language)
	}

	start := time.Now()
	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	metrics.SpeechRequestDuration.WithLabelValues("transcribe").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SpeechRequestsTotal.WithLabelValues("transcribe", "error").Inc()
		return "", tracer.Fail(span, fmt.Errorf("transcription failed: %w", err))
	}
	metrics.SpeechRequestsTotal.WithLabelValues("transcribe", "success").Inc()
	return resp.Text, nil
}
