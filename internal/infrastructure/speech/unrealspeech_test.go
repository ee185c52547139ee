package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostwriter-api/internal/config"
	apperrors "ghostwriter-api/pkg/errors"
)

func newTestSpeaker(t *testing.T, baseURL string, attempts int) *UnrealSpeech {
	t.Helper()
	s, err := NewUnrealSpeech(&config.TTSConfig{
		APIKey:         "key",
		BaseURL:        baseURL,
		Bitrate:        "192k",
		StreamMaxChars: 1000,
		PollInterval:   time.Millisecond,
		PollAttempts:   attempts,
		Timeout:        5 * time.Second,
	})
	require.NoError(t, err)
	return s
}

func TestNewUnrealSpeech_RequiresKey(t *testing.T) {
	_, err := NewUnrealSpeech(&config.TTSConfig{})
	assert.Error(t, err)
}

func TestSynthesize_ShortTextUsesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stream", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body synthesisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "olá", body.Text)
		assert.Equal(t, "pf_dora", body.VoiceID)
		assert.Equal(t, "192k", body.Bitrate)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("MP3"))
	}))
	defer srv.Close()

	audio, err := newTestSpeaker(t, srv.URL, 3).Synthesize(context.Background(), "olá", "pf_dora")
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3"), audio)
}

func TestSynthesize_StreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad voice", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestSpeaker(t, srv.URL, 3).Synthesize(context.Background(), "x", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad voice")
}

func TestSynthesize_LongTextPollsTask(t *testing.T) {
	var polls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/synthesisTasks":
			var body synthesisRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "sentence", body.TimestampType)
			_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t1","TaskStatus":"scheduled"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/synthesisTasks/t1":
			if polls.Add(1) < 2 {
				_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t1","TaskStatus":"in_progress"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t1","TaskStatus":"completed","OutputUri":"` + srv.URL + `/audio/t1.mp3"}}`))
		case r.URL.Path == "/audio/t1.mp3":
			_, _ = w.Write([]byte("LONGMP3"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	audio, err := newTestSpeaker(t, srv.URL, 5).Synthesize(context.Background(), strings.Repeat("a", 1000), "pm_alex")
	require.NoError(t, err)
	assert.Equal(t, []byte("LONGMP3"), audio)
	assert.Equal(t, int32(2), polls.Load())
}

func TestSynthesize_TaskFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t2"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t2","TaskStatus":"failed"}}`))
	}))
	defer srv.Close()

	_, err := newTestSpeaker(t, srv.URL, 5).Synthesize(context.Background(), strings.Repeat("b", 1200), "pm_alex")
	require.Error(t, err)
	assert.False(t, apperrors.IsAppError(err))
}

func TestSynthesize_TaskTimeout(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t3"}}`))
			return
		}
		polls.Add(1)
		_, _ = w.Write([]byte(`{"SynthesisTask":{"TaskId":"t3","TaskStatus":"in_progress"}}`))
	}))
	defer srv.Close()

	_, err := newTestSpeaker(t, srv.URL, 3).Synthesize(context.Background(), strings.Repeat("c", 1500), "pm_alex")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeTimeout, appErr.Code)
	assert.Equal(t, http.StatusGatewayTimeout, appErr.HTTPStatus)
	assert.Equal(t, int32(3), polls.Load())
}
