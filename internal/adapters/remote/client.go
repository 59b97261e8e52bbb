// Package remote implements the network fetch boundary as an HTTP client
// speaking zstd-compressed CBOR to remote scope endpoints.
package remote

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RemoteFetcher = (*Client)(nil)

const (
	fetchPath      = "/api/v1/fetch"
	contentType    = "application/cbor+zstd"
	defaultTimeout = 60 * time.Second
)

// Client implements ports.RemoteFetcher against per-scope base URLs.
type Client struct {
	selfScope string
	endpoints map[string]string
	client    *http.Client
	log       ports.Logger
}

// NewClient creates a fetcher for the configured scope.
func NewClient(cfg *domain.ScopeConfig, log ports.Logger) *Client {
	return &Client{
		selfScope: cfg.Scope,
		endpoints: cfg.Remotes,
		client:    &http.Client{Timeout: defaultTimeout},
		log:       log,
	}
}

// Fetch issues one request per scope in the grouping and combines the
// returned items into a single transfer batch. Item order follows the
// grouping's scope order.
func (c *Client) Fetch(ctx context.Context, grouping domain.ScopeGrouping, opts domain.FetchOptions, reqCtx domain.RequestContext) (domain.TransferBatch, error) {
	var combined domain.TransferBatch
	for _, scope := range grouping.Scopes() {
		base, ok := c.endpoints[scope]
		if !ok {
			return domain.TransferBatch{}, zerr.With(domain.ErrRemoteScopeNotFound, "scope", scope)
		}

		batch, err := c.fetchScope(ctx, base, scope, grouping.Refs(scope), opts, reqCtx)
		if err != nil {
			return domain.TransferBatch{}, err
		}
		combined.Items = append(combined.Items, batch.Items...)
	}
	return combined, nil
}

func (c *Client) fetchScope(ctx context.Context, base, scope string, refs []string, opts domain.FetchOptions, reqCtx domain.RequestContext) (domain.TransferBatch, error) {
	body, err := encodeFetchRequest(fetchRequest{
		Scope:               scope,
		Refs:                refs,
		Requester:           c.selfScope,
		Type:                opts.Type,
		WithoutDependencies: opts.WithoutDependencies,
		Context:             reqCtx,
	})
	if err != nil {
		return domain.TransferBatch{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+fetchPath, bytes.NewReader(body))
	if err != nil {
		return domain.TransferBatch{}, zerr.Wrap(err, "failed to build fetch request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.TransferBatch{}, zerr.With(zerr.Wrap(err, "remote fetch failed"), "scope", scope)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if c.log != nil {
		c.log.Debug("remote fetch",
			"scope", scope,
			"refs", len(refs),
			"type", string(opts.Type),
			"status", resp.StatusCode,
			"fingerprint", reqCtx.FingerprintID,
		)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.TransferBatch{}, zerr.With(domain.ErrPermissionDenied, "scope", scope)
	case http.StatusNotFound:
		return domain.TransferBatch{}, zerr.With(domain.ErrRemoteScopeNotFound, "scope", scope)
	default:
		err := zerr.With(zerr.New("unexpected remote status"), "scope", scope)
		return domain.TransferBatch{}, zerr.With(err, "status", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TransferBatch{}, zerr.With(zerr.Wrap(err, "failed to read fetch response"), "scope", scope)
	}
	return decodeFetchResponse(data)
}
