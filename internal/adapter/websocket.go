package adapter

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/models"
	"github.com/fasthttp/websocket"
)

const closeWriteWait = time.Second

type websocketDialer struct {
	dialer *websocket.Dialer
	logger *logger.Logger
}

// NewWebsocketDialer constructs a [Dialer] that opens live channels over
// websocket. The opening handshake times out after
// adapterCfg.HandshakeTimeout when it is positive.
func NewWebsocketDialer(adapterCfg config.ClientAdapter, logger *logger.Logger) Dialer {
	return &websocketDialer{
		dialer: &websocket.Dialer{
			HandshakeTimeout: adapterCfg.HandshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
		logger: logger,
	}
}

// Dial implements [Dialer].
func (d *websocketDialer) Dial(ctx context.Context, uri string) (LiveChannel, error) {
	conn, resp, err := d.dialer.DialContext(ctx, uri, http.Header{})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial live channel %s (status %d): %w", uri, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial live channel %s: %w", uri, err)
	}

	d.logger.Debug().Str("uri", uri).Msg("live channel connected")
	return &websocketChannel{conn: conn}, nil
}

type websocketChannel struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	closed  atomic.Bool
}

// Read implements [LiveChannel].
func (c *websocketChannel) Read() ([]byte, error) {
	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		if c.closed.Load() {
			return nil, fmt.Errorf("%w: %w", ErrChannelClosed, err)
		}
		return nil, fmt.Errorf("read live channel: %w", err)
	}
	return payload, nil
}

// Subscribe implements [LiveChannel].
func (c *websocketChannel) Subscribe(id string) error {
	return c.write(models.Event{Action: models.ActionSubscribe, ID: id})
}

// Unsubscribe implements [LiveChannel].
func (c *websocketChannel) Unsubscribe(id string) error {
	return c.write(models.Event{Action: models.ActionUnsubscribe, ID: id})
}

// Close implements [LiveChannel]. A close frame is sent on a best-effort
// basis before the connection is torn down.
func (c *websocketChannel) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWriteWait),
	)
	return c.conn.Close()
}

func (c *websocketChannel) write(event models.Event) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.WriteJSON(event); err != nil {
		return fmt.Errorf("write %s frame for %s: %w", event.Action, event.ID, err)
	}
	return nil
}
