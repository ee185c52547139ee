package port

import (
	"context"
	"io"
)

// Transcriber 语音转文字能力
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Speaker 文字转语音能力，返回 audio/mpeg 字节
type Speaker interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
