package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostwriter-api/internal/config"
)

func TestNewWhisperTranscriber_RequiresKey(t *testing.T) {
	_, err := NewWhisperTranscriber(&config.TranscriptionConfig{})
	assert.Error(t, err)
}

func TestWhisperTranscriber_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/audio/transcriptions"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "pt", r.FormValue("language"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "ditado.webm", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"era uma vez"}`))
	}))
	defer srv.Close()

	tr, err := NewWhisperTranscriber(&config.TranscriptionConfig{
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/v1/",
		Model:    "whisper-1",
		Language: "pt",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)

	text, err := tr.Transcribe(context.Background(), strings.NewReader("fake audio"), "ditado.webm")
	require.NoError(t, err)
	assert.Equal(t, "era uma vez", text)
}
