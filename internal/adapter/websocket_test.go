package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/models"
	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer pushes greeting to every client and forwards every frame it
// receives to the returned channel.
func echoServer(t *testing.T, greeting string) (*httptest.Server, <-chan models.Event) {
	t.Helper()
	received := make(chan models.Event, 16)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if greeting != "" {
			if err = conn.WriteMessage(websocket.TextMessage, []byte(greeting)); err != nil {
				return
			}
		}

		for {
			var ev models.Event
			if err = conn.ReadJSON(&ev); err != nil {
				return
			}
			received <- ev
		}
	}))

	return srv, received
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func newTestDialer() Dialer {
	return NewWebsocketDialer(config.ClientAdapter{HandshakeTimeout: 2 * time.Second}, logger.Nop())
}

func TestWebsocket_ReadGreeting(t *testing.T) {
	srv, _ := echoServer(t, `{"action":"update","id":"1"}`)
	defer srv.Close()

	ch, err := newTestDialer().Dial(context.Background(), wsURL(srv.URL))
	require.NoError(t, err)
	defer ch.Close()

	payload, err := ch.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"update","id":"1"}`, string(payload))
}

func TestWebsocket_SubscribeWritesFrames(t *testing.T) {
	srv, received := echoServer(t, "")
	defer srv.Close()

	ch, err := newTestDialer().Dial(context.Background(), wsURL(srv.URL))
	require.NoError(t, err)
	defer ch.Close()

	require.NoError(t, ch.Subscribe("5"))
	require.NoError(t, ch.Unsubscribe("5"))

	for _, want := range []models.Event{
		{Action: models.ActionSubscribe, ID: "5"},
		{Action: models.ActionUnsubscribe, ID: "5"},
	} {
		select {
		case got := <-received:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("frame %v not received", want)
		}
	}
}

func TestWebsocket_CloseUnblocksRead(t *testing.T) {
	srv, _ := echoServer(t, "")
	defer srv.Close()

	ch, err := newTestDialer().Dial(context.Background(), wsURL(srv.URL))
	require.NoError(t, err)

	readErr := make(chan error, 1)
	go func() {
		_, err := ch.Read()
		readErr <- err
	}()

	require.NoError(t, ch.Close())
	assert.NoError(t, ch.Close(), "second Close must be a no-op")

	select {
	case err = <-readErr:
		assert.ErrorIs(t, err, ErrChannelClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Read was not unblocked by Close")
	}

	assert.ErrorIs(t, ch.Subscribe("1"), ErrChannelClosed)
}

func TestWebsocket_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestDialer().Dial(context.Background(), wsURL(srv.URL))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
