package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RequestContext is the immutable trace metadata threaded through every
// resolution call. It carries observability data only, never resolution
// state, and is enriched by copy rather than in-place mutation.
type RequestContext struct {
	// FingerprintID correlates all rounds of one top-level call.
	FingerprintID string `cbor:"fingerprint" json:"fingerprint"`

	// RequestedRefs are the originally requested ref strings, passed to
	// the transport so remote scopes can trace what triggered a fetch.
	RequestedRefs []string `cbor:"requested,omitempty" json:"requested,omitempty"`

	// Attributes holds free-form trace attributes.
	Attributes map[string]string `cbor:"attributes,omitempty" json:"attributes,omitempty"`
}

// NewRequestContext fingerprints the originally requested refs.
func NewRequestContext(requested []string) RequestContext {
	h := xxhash.New()
	for _, s := range requested {
		_, _ = h.WriteString(s)
		_, _ = h.WriteString("\n")
	}
	return RequestContext{
		FingerprintID: strconv.FormatUint(h.Sum64(), 16),
		RequestedRefs: requested,
	}
}

// WithAttribute returns a copy of the context carrying one extra trace
// attribute.
func (rc RequestContext) WithAttribute(key, value string) RequestContext {
	attrs := make(map[string]string, len(rc.Attributes)+1)
	for k, v := range rc.Attributes {
		attrs[k] = v
	}
	attrs[key] = value
	rc.Attributes = attrs
	return rc
}
