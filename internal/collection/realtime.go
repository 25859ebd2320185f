package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/live-collection/internal/adapter"
	"github.com/MKhiriev/live-collection/models"
)

// pump reads live frames until the channel fails or the collection closes.
// Each frame becomes one task, so events are applied in arrival order and
// never interleave with caller operations.
func (c *Collection) pump(ch adapter.LiveChannel) {
	defer c.pumpWG.Done()

	for {
		frame, err := ch.Read()
		if err != nil {
			if c.closed.Load() || errors.Is(err, adapter.ErrChannelClosed) {
				return
			}
			c.logger.Warn().Err(err).Msg("live channel lost")
			c.reportAsync(fmt.Errorf("read live channel: %w", err))
			return
		}

		err = c.handleFrame(frame)
		switch {
		case err == nil:
		case errors.Is(err, ErrClosed), c.ctx.Err() != nil:
			return
		default:
			c.reportAsync(err)
		}
	}
}

// reportAsync hands err to the async error handler. While the handler runs,
// Close does not wait for the reader goroutine, so the handler may close the
// collection.
func (c *Collection) reportAsync(err error) {
	c.inHandler.Store(true)
	defer c.inHandler.Store(false)

	c.onAsyncError(c.ctx, err)
}

func (c *Collection) handleFrame(frame []byte) error {
	var event models.Event
	if err := json.Unmarshal(frame, &event); err != nil {
		c.logger.Warn().Err(err).Str("frame", string(frame)).Msg("dropping malformed live frame")
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	switch event.Action {
	case models.ActionCreate, models.ActionUpdate, models.ActionDelete:
	default:
		c.logger.Debug().Str("action", string(event.Action)).Msg("ignoring unknown live action")
		return nil
	}

	if event.ID == "" {
		c.logger.Warn().Str("action", string(event.Action)).Msg("dropping live event without id")
		return fmt.Errorf("%w: %s event without id", ErrProtocol, event.Action)
	}

	return c.do(c.ctx, "live "+string(event.Action), func(ctx context.Context) error {
		return c.apply(ctx, event)
	})
}

// apply runs on the worker goroutine.
func (c *Collection) apply(ctx context.Context, event models.Event) error {
	log := c.logger.With().Str("action", string(event.Action)).Str("id", event.ID).Logger()

	switch event.Action {
	case models.ActionCreate:
		if !c.Inclusive() {
			log.Debug().Msg("create ignored, collection does not accept inserts")
			return nil
		}
		if _, err := c.addByID(ctx, event.ID); err != nil {
			return fmt.Errorf("create %s: %w", event.ID, err)
		}

	case models.ActionUpdate:
		h, ok := c.Get(event.ID)
		if !ok {
			log.Debug().Msg("update ignored, entity not held")
			return nil
		}
		if err := h.Load(ctx); err != nil {
			return fmt.Errorf("update %s: %w", event.ID, err)
		}

	case models.ActionDelete:
		if !c.remove(event.ID) {
			log.Debug().Msg("delete ignored, entity not held")
			return nil
		}
	}

	log.Debug().Msg("live event applied")
	return nil
}
