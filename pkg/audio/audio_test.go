package audio

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for media event")
	}
	return Event{}
}

func TestSilentLifecycle(t *testing.T) {
	s := NewSilent()
	defer s.Close()

	assert.Error(t, s.Play(), "Play() should fail without a source")
	assert.True(t, s.Paused())

	require.NoError(t, s.Load("http://example.com/1.mp3"))
	assert.Equal(t, Ready, nextEvent(t, s.Events()).Type)

	require.NoError(t, s.Play())
	assert.Equal(t, Played, nextEvent(t, s.Events()).Type)
	assert.False(t, s.Paused())

	// playing twice does not emit twice
	require.NoError(t, s.Play())

	s.Pause()
	assert.Equal(t, Paused, nextEvent(t, s.Events()).Type)
	assert.True(t, s.Paused())

	require.NoError(t, s.Seek(30*time.Second))
	assert.Equal(t, 30*time.Second, s.Position())
	assert.Equal(t, time.Duration(0), s.Duration())

	s.SetVolume(0.25)
	assert.Equal(t, 0.25, s.Volume())
}

func TestSilentLoadResetsState(t *testing.T) {
	s := NewSilent()
	defer s.Close()

	s.Load("http://example.com/1.mp3")
	s.Play()
	s.Seek(time.Minute)

	require.NoError(t, s.Load("http://example.com/2.mp3"))
	assert.True(t, s.Paused())
	assert.Equal(t, time.Duration(0), s.Position())
	assert.Error(t, s.Load(""))
}

func TestSilentClose(t *testing.T) {
	s := NewSilent()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, ok := <-s.Events()
	assert.False(t, ok, "events channel should be closed after Close()")
}

func TestSpeakerRejectsEmptyURL(t *testing.T) {
	s := NewSpeaker()
	defer s.Close()

	assert.Error(t, s.Load(""))
	assert.Error(t, s.Play(), "Play() should fail without a source")
	assert.True(t, s.Paused())
	assert.Equal(t, time.Duration(0), s.Duration())
	assert.Error(t, s.Seek(time.Second))
}

func TestSpeakerReportsDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewSpeaker()
	defer s.Close()

	require.NoError(t, s.Load(server.URL+"/missing.mp3"))
	ev := nextEvent(t, s.Events())
	assert.Equal(t, Failed, ev.Type)
	assert.Error(t, ev.Err)
}

func TestSpeakerReportsDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("definitely not an mp3 stream"))
	}))
	defer server.Close()

	s := NewSpeaker()
	defer s.Close()

	require.NoError(t, s.Load(server.URL+"/1.mp3"))
	// a play request before the source is ready is remembered, not rejected
	require.NoError(t, s.Play())

	ev := nextEvent(t, s.Events())
	assert.Equal(t, Failed, ev.Type)
	assert.True(t, s.Paused())
}

// stubStream is a decoded source that yields silence.
type stubStream struct {
	pos int
	n   int
}

func (s *stubStream) Stream(samples [][2]float64) (int, bool) {
	return 0, false
}

func (s *stubStream) Err() error {
	return nil
}

func (s *stubStream) Len() int {
	return s.n
}

func (s *stubStream) Position() int {
	return s.pos
}

func (s *stubStream) Seek(p int) error {
	s.pos = p
	return nil
}

func (s *stubStream) Close() error {
	return nil
}

func TestSpeakerRejectsPendingPlayWithoutDevice(t *testing.T) {
	s := NewSpeaker()
	defer s.Close()
	s.initDevice = func(beep.SampleRate, int) error { return errors.New("no audio device") }

	url := "http://example.com/1.mp3"
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

	// a play request made while the file was downloading
	s.mu.Lock()
	s.url = url
	s.wantPlay = true
	s.attachLocked(&stubStream{n: 44100}, format, url)
	s.mu.Unlock()

	assert.Equal(t, Ready, nextEvent(t, s.Events()).Type)
	ev := nextEvent(t, s.Events())
	assert.Equal(t, Rejected, ev.Type)
	assert.ErrorIs(t, ev.Err, ErrPlaybackRejected)

	assert.True(t, s.Paused(), "the next play press must try to play again")
	assert.ErrorIs(t, s.Play(), ErrPlaybackRejected)
}

func TestSpeakerClose(t *testing.T) {
	s := NewSpeaker()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Error(t, s.Load("http://example.com/1.mp3"))

	_, ok := <-s.Events()
	assert.False(t, ok)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "played", Played.String())
	assert.Equal(t, "ended", Ended.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
