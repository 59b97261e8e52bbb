package remote

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// fetchRequest is the wire form of one per-scope fetch round-trip.
type fetchRequest struct {
	// Scope is the owning scope being asked.
	Scope string `cbor:"scope"`

	// Refs are the requested ref strings: id strings for component
	// requests, lane names for lane requests, hashes for object requests.
	Refs []string `cbor:"refs"`

	// Requester is the scope issuing the request.
	Requester string `cbor:"requester"`

	Type                domain.FetchType `cbor:"type"`
	WithoutDependencies bool             `cbor:"without_dependencies,omitempty"`

	// Context carries trace metadata for the remote side's observability.
	Context domain.RequestContext `cbor:"context"`
}

var (
	wireEnc *zstd.Encoder
	wireDec *zstd.Decoder
)

func init() {
	var err error
	wireEnc, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	wireDec, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
}

func encodeFetchRequest(req fetchRequest) ([]byte, error) {
	data, err := cbor.Marshal(req)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode fetch request")
	}
	return wireEnc.EncodeAll(data, nil), nil
}

func decodeFetchResponse(body []byte) (domain.TransferBatch, error) {
	data, err := wireDec.DecodeAll(body, nil)
	if err != nil {
		return domain.TransferBatch{}, zerr.Wrap(err, "failed to decompress fetch response")
	}
	var batch domain.TransferBatch
	if err := cbor.Unmarshal(data, &batch); err != nil {
		return domain.TransferBatch{}, zerr.Wrap(err, "failed to decode fetch response")
	}
	return batch, nil
}

// EncodeBatch compresses and encodes a transfer batch the way a scope
// endpoint responds. Exported for tests and for serving fixtures.
func EncodeBatch(batch domain.TransferBatch) ([]byte, error) {
	data, err := cbor.Marshal(batch)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode transfer batch")
	}
	return wireEnc.EncodeAll(data, nil), nil
}

// DecodeFetchRequest decodes a request body the way a scope endpoint
// reads it. Exported for tests and for serving fixtures.
func DecodeFetchRequest(body []byte) (scope string, refs []string, requester string, fetchType domain.FetchType, err error) {
	data, err := wireDec.DecodeAll(body, nil)
	if err != nil {
		return "", nil, "", "", zerr.Wrap(err, "failed to decompress fetch request")
	}
	var req fetchRequest
	if err := cbor.Unmarshal(data, &req); err != nil {
		return "", nil, "", "", zerr.Wrap(err, "failed to decode fetch request")
	}
	return req.Scope, req.Refs, req.Requester, req.Type, nil
}
