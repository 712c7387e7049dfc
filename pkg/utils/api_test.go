package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code":200,"status":"OK"}`))
		case "/broken":
			w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)

	t.Run("decodes body", func(t *testing.T) {
		var out struct {
			Code   int    `json:"code"`
			Status string `json:"status"`
		}
		require.NoError(t, api.Get(context.Background(), "/ok", &out))
		assert.Equal(t, 200, out.Code)
		assert.Equal(t, "OK", out.Status)
	})

	t.Run("bad status", func(t *testing.T) {
		var out struct{}
		err := api.Get(context.Background(), "/missing", &out)
		assert.True(t, errors.Is(err, ErrBadStatus))
	})

	t.Run("malformed body", func(t *testing.T) {
		var out struct{}
		assert.Error(t, api.Get(context.Background(), "/broken", &out))
	})
}

func TestAPIDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.mp3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte{0xFF, 0xFB, 0x90})
	}))
	defer server.Close()

	api := NewAPI("", time.Second)

	body, err := api.Download(context.Background(), server.URL+"/1.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFB, 0x90}, body)

	_, err = api.Download(context.Background(), server.URL+"/2.mp3")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestAPIPost(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	require.NoError(t, api.Post(context.Background(), "/send", map[string]string{"text": "hi"}))
	assert.Equal(t, "application/json", got)
}
