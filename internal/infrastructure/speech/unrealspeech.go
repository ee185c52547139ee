package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"ghostwriter-api/internal/config"
	workflowport "ghostwriter-api/internal/workflow/port"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/metrics"
	"ghostwriter-api/pkg/tracer"
)

const (
	streamEndpoint = "/stream"
	tasksEndpoint  = "/synthesisTasks"

	taskCompleted = "completed"
	taskFailed    = "failed"
)

// Voices 可选的葡萄牙语音色
var Voices = map[string]string{
	"pm_alex":  "Alex (masculino)",
	"pm_santa": "Santa (masculino)",
	"pf_dora":  "Dora (feminino)",
}

var _ workflowport.Speaker = (*UnrealSpeech)(nil)

// UnrealSpeech 语音合成客户端
// 短文本走同步流式接口，长文本创建异步任务并轮询
type UnrealSpeech struct {
	apiKey         string
	baseURL        string
	bitrate        string
	streamMaxChars int
	pollInterval   time.Duration
	pollAttempts   int
	httpClient     *http.Client
}

// NewUnrealSpeech 创建语音合成客户端
func NewUnrealSpeech(cfg *config.TTSConfig) (*UnrealSpeech, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("tts api key not configured")
	}
	return &UnrealSpeech{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		bitrate:        cfg.Bitrate,
		streamMaxChars: cfg.StreamMaxChars,
		pollInterval:   cfg.PollInterval,
		pollAttempts:   cfg.PollAttempts,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type synthesisRequest struct {
	Text          string  `json:"Text"`
	VoiceID       string  `json:"VoiceId"`
	Bitrate       string  `json:"Bitrate"`
	Speed         float64 `json:"Speed"`
	Pitch         float64 `json:"Pitch"`
	TimestampType string  `json:"TimestampType,omitempty"`
}

type synthesisTask struct {
	SynthesisTask struct {
		TaskID     string `json:"TaskId"`
		TaskStatus string `json:"TaskStatus"`
		OutputURI  string `json:"OutputUri"`
	} `json:"SynthesisTask"`
}

// Synthesize 合成 audio/mpeg 音频
func (u *UnrealSpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "speech.Synthesize")
	defer span.End()

	if utf8.RuneCountInString(text) < u.streamMaxChars {
		audio, err := u.observe("tts_stream", func() ([]byte, error) { return u.stream(ctx, text, voice) })
		return audio, tracer.Fail(span, err)
	}
	audio, err := u.observe("tts_task", func() ([]byte, error) { return u.runTask(ctx, text, voice) })
	return audio, tracer.Fail(span, err)
}

func (u *UnrealSpeech) observe(kind string, fn func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	audio, err := fn()
	metrics.SpeechRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SpeechRequestsTotal.WithLabelValues(kind, status).Inc()
	return audio, err
}

func (u *UnrealSpeech) stream(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := u.post(ctx, streamEndpoint, synthesisRequest{
		Text: text, VoiceID: voice, Bitrate: u.bitrate, Pitch: 1.0,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("tts stream", resp)
	}
	return io.ReadAll(resp.Body)
}

func (u *UnrealSpeech) runTask(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := u.post(ctx, tasksEndpoint, synthesisRequest{
		Text: text, VoiceID: voice, Bitrate: u.bitrate, Pitch: 1.0, TimestampType: "sentence",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("tts task creation", resp)
	}
	var created synthesisTask
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode synthesis task: %w", err)
	}
	taskID := created.SynthesisTask.TaskID
	if taskID == "" {
		return nil, fmt.Errorf("synthesis task id missing")
	}

	ticker := time.NewTicker(u.pollInterval)
	defer ticker.Stop()
	for i := 0; i < u.pollAttempts; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		task, err := u.getTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch task.SynthesisTask.TaskStatus {
		case taskCompleted:
			return u.download(ctx, task.SynthesisTask.OutputURI)
		case taskFailed:
			return nil, fmt.Errorf("tts generation failed")
		}
	}
	return nil, apperrors.New(apperrors.CodeTimeout, "tts generation timeout")
}

func (u *UnrealSpeech) getTask(ctx context.Context, taskID string) (*synthesisTask, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+tasksEndpoint+"/"+taskID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts task status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("tts task status", resp)
	}
	var task synthesisTask
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode synthesis task: %w", err)
	}
	return &task, nil
}

func (u *UnrealSpeech) download(ctx context.Context, uri string) ([]byte, error) {
	if uri == "" {
		return nil, fmt.Errorf("synthesis task has no output uri")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts audio download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("tts audio download", resp)
	}
	return io.ReadAll(resp.Body)
}

func (u *UnrealSpeech) post(ctx context.Context, path string, body synthesisRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
