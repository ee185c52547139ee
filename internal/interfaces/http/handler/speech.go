package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/application/settings"
	"ghostwriter-api/internal/config"
	"ghostwriter-api/internal/infrastructure/speech"
	"ghostwriter-api/internal/interfaces/http/dto"
	workflowport "ghostwriter-api/internal/workflow/port"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

const audioFormField = "audio"

// SpeechHandler 语音合成与转写处理器，speaker 或 transcriber 为 nil 时对应接口返回 503
type SpeechHandler struct {
	speaker        workflowport.Speaker
	transcriber    workflowport.Transcriber
	settings       *settings.Service
	maxUploadBytes int64
}

// NewSpeechHandler 创建语音处理器
func NewSpeechHandler(
	cfg *config.Config,
	speaker workflowport.Speaker,
	transcriber workflowport.Transcriber,
	settingsSvc *settings.Service,
) *SpeechHandler {
	return &SpeechHandler{
		speaker:        speaker,
		transcriber:    transcriber,
		settings:       settingsSvc,
		maxUploadBytes: cfg.Server.HTTP.MaxUploadBytes,
	}
}

// ListVoices 获取可选音色
// @Summary 获取音色列表
// @Tags Speech
// @Produce json
// @Success 200 {object} dto.Response[dto.VoicesResponse]
// @Router /v1/tts/voices [get]
func (h *SpeechHandler) ListVoices(c *gin.Context) {
	dto.Success(c, dto.VoicesResponse{Voices: speech.Voices})
}

// Synthesize 文本转语音，返回 audio/mpeg
// @Summary 语音合成
// @Tags Speech
// @Accept json
// @Produce audio/mpeg
// @Param body body dto.SynthesizeRequest true "文本与音色"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /v1/tts [post]
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		dto.BadRequest(c, "text is required")
		return
	}
	if h.speaker == nil {
		dto.ServiceUnavailable(c, "tts is not configured")
		return
	}

	voice := strings.TrimSpace(req.Voice)
	if voice == "" {
		s, err := h.settings.Get(ctx)
		if err != nil {
			respondError(ctx, c, "failed to load settings for tts", err)
			return
		}
		voice = s.Voice()
	}

	audio, err := h.speaker.Synthesize(ctx, req.Text, voice)
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.SpeechFailure(err)
		}
		respondError(ctx, c, "failed to synthesize speech", err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// Transcribe 语音转文字
// @Summary 语音转写
// @Tags Speech
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "音频文件"
// @Success 200 {object} dto.Response[dto.TranscriptionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/transcribe [post]
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile(audioFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			dto.Error(c, http.StatusRequestEntityTooLarge, "audio file too large")
			return
		}
		dto.BadRequest(c, "audio file is required")
		return
	}
	if h.transcriber == nil {
		dto.ServiceUnavailable(c, "transcription is not configured")
		return
	}

	file, err := header.Open()
	if err != nil {
		dto.BadRequest(c, "failed to read audio file")
		return
	}
	defer file.Close()

	text, err := h.transcriber.Transcribe(ctx, file, header.Filename)
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.SpeechFailure(err)
		}
		respondError(ctx, c, "failed to transcribe audio", err)
		return
	}

	logger.Info(ctx, "audio transcribed", "filename", header.Filename, "chars", len(text))
	dto.Success(c, dto.TranscriptionResponse{Text: text, Success: true})
}
