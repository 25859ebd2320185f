package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/internal/utils"
	"github.com/MKhiriev/live-collection/models"
	"github.com/go-resty/resty/v2"
)

const (
	mediaTypeJSONAPI = "application/vnd.api+json"
	requestIDHeader  = utils.RequestIDHeader
)

type httpTransport struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPTransport constructs the resty-backed implementation of
// [Transport]. Requests time out after adapterCfg.RequestTimeout when it is
// positive.
func NewHTTPTransport(adapterCfg config.ClientAdapter, logger *logger.Logger) Transport {
	client := utils.NewHTTPClient(
		utils.WithTimeout(adapterCfg.RequestTimeout),
		utils.WithHeader("Accept", mediaTypeJSONAPI),
	)

	return &httpTransport{client: client, logger: logger}
}

// Fetch implements [Transport]. A non-2xx response is still returned as a
// document when its body carries server-reported errors; otherwise the
// status is mapped to one of the package sentinels.
func (h *httpTransport) Fetch(ctx context.Context, uri string, params url.Values) (models.Document, error) {
	target, err := normalizeURL(uri)
	if err != nil {
		return models.Document{}, fmt.Errorf("invalid collection uri: %w", err)
	}

	resp, err := h.request(ctx).
		SetQueryParamsFromValues(params).
		Get(target)
	if err != nil {
		return models.Document{}, fmt.Errorf("fetch request: %w", err)
	}

	var doc models.Document
	decodeErr := json.Unmarshal(resp.Body(), &doc)

	if !isSuccess(resp) {
		if decodeErr == nil && len(doc.Errors) > 0 {
			h.logger.Debug().
				Str("uri", target).
				Int("status", resp.StatusCode()).
				Int("errors", len(doc.Errors)).
				Msg("server reported errors")
			return doc, nil
		}
		return models.Document{}, mapHTTPError(resp)
	}
	if decodeErr != nil {
		return models.Document{}, fmt.Errorf("decode collection response: %w", decodeErr)
	}

	return doc, nil
}

// FetchOne implements [Transport]. It returns [ErrEmptyResource] when the
// response decodes but carries no data object.
func (h *httpTransport) FetchOne(ctx context.Context, uri string) (models.Resource, error) {
	target, err := normalizeURL(uri)
	if err != nil {
		return models.Resource{}, fmt.Errorf("invalid resource uri: %w", err)
	}

	resp, err := h.request(ctx).Get(target)
	if err != nil {
		return models.Resource{}, fmt.Errorf("fetch one request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Resource{}, err
	}

	var doc models.SingleDocument
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.Resource{}, fmt.Errorf("decode resource response: %w", err)
	}
	if doc.Data == nil {
		return models.Resource{}, ErrEmptyResource
	}

	return *doc.Data, nil
}

// request starts a request bound to ctx; the client middleware stamps the
// request id from it.
func (h *httpTransport) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func isSuccess(resp *resty.Response) bool {
	return resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
