package cas

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// envelope is the on-disk framing of one stored object: the typed payload
// plus its kind discriminator, CBOR-encoded and zstd-compressed.
type envelope struct {
	Kind    domain.ObjectKind `cbor:"kind"`
	Payload []byte            `cbor:"payload"`
}

var (
	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder
)

func init() {
	var err error
	zstdEnc, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	zstdDec, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
}

// sealEnvelope frames, encodes and compresses one object for storage.
func sealEnvelope(kind domain.ObjectKind, payload []byte) ([]byte, error) {
	data, err := cbor.Marshal(envelope{Kind: kind, Payload: payload})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode object envelope")
	}
	return zstdEnc.EncodeAll(data, nil), nil
}

// openEnvelope decompresses and decodes a stored object.
func openEnvelope(sealed []byte) (envelope, error) {
	data, err := zstdDec.DecodeAll(sealed, nil)
	if err != nil {
		return envelope{}, zerr.Wrap(err, "failed to decompress object envelope")
	}
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return envelope{}, zerr.Wrap(err, "failed to decode object envelope")
	}
	return env, nil
}
