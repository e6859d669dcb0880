package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

type allowList []string

func (a allowList) Allow(origin string) bool {
	for _, o := range a {
		if o == origin {
			return true
		}
	}
	return false
}

func newLiveServer(t *testing.T) (*ScanHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewScanHub(allowList{"http://scanner.local"})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	require.Eventually(t, hub.running.Load, time.Second, time.Millisecond)

	r := gin.New()
	r.GET("/live/:announcementID", hub.HandleLive)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/live/"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://scanner.local"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestScanHub_FansOutPerAnnouncement(t *testing.T) {
	hub, base := newLiveServer(t)

	watching := dial(t, base+"1")
	other := dial(t, base+"2")
	require.Eventually(t, func() bool { return hub.connected() == 2 }, time.Second, 10*time.Millisecond)

	hub.Publish(domain.ScanResult{
		Status:         domain.ScanSuccess,
		Message:        domain.MsgTicketValidated,
		AnnouncementID: 1,
		User:           &domain.PublicProfile{Username: "ana", Score: 5},
	})

	var got domain.ScanResult
	require.NoError(t, watching.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, watching.ReadJSON(&got))
	assert.Equal(t, domain.ScanSuccess, got.Status)
	assert.Equal(t, uint(1), got.AnnouncementID)
	require.NotNil(t, got.User)
	assert.Equal(t, "ana", got.User.Username)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestScanHub_Unregisters(t *testing.T) {
	hub, base := newLiveServer(t)

	conn := dial(t, base+"1")
	require.Eventually(t, func() bool { return hub.connected() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestScanHub_RejectsForeignOrigin(t *testing.T) {
	_, base := newLiveServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(base+"1", http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestScanHub_PublishNeverBlocks(t *testing.T) {
	hub := NewScanHub(allowList{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.Publish(domain.ScanResult{AnnouncementID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestScanHub_RefusesWhenNotRunning(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stopped := NewScanHub(allowList{})
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		stopped.Run(ctx)
		close(finished)
	}()
	require.Eventually(t, stopped.running.Load, time.Second, time.Millisecond)
	cancel()
	<-finished

	tests := []struct {
		name string
		hub  *ScanHub
	}{
		{"never started", NewScanHub(allowList{})},
		{"stopped", stopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/live/:announcementID", tt.hub.HandleLive)
			srv := httptest.NewServer(r)
			defer srv.Close()

			dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
			_, resp, err := dialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live/1", nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			assert.Equal(t, 0, tt.hub.connected())
		})
	}
}

func TestScanHub_RunsOnce(t *testing.T) {
	hub := NewScanHub(allowList{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	require.Eventually(t, hub.running.Load, time.Second, time.Millisecond)

	returned := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("second Run did not return")
	}
	assert.True(t, hub.serving())
}
