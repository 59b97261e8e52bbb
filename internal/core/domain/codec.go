package domain

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
	"go.trai.ch/zerr"
)

// Object payloads travel and persist as canonical CBOR so the same bytes
// always produce the same content address.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// MarshalCBOR encodes the interned string as a plain CBOR text string.
func (is InternedString) MarshalCBOR() ([]byte, error) {
	return cborEnc.Marshal(is.String())
}

// UnmarshalCBOR decodes a plain CBOR text string.
func (is *InternedString) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cborDec.Unmarshal(data, &s); err != nil {
		return err
	}
	*is = NewInternedString(s)
	return nil
}

// MarshalCBOR encodes the id in its canonical "scope/name@version" form.
func (id ComponentID) MarshalCBOR() ([]byte, error) {
	return cborEnc.Marshal(id.String())
}

// UnmarshalCBOR decodes the canonical id form.
func (id *ComponentID) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cborDec.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseComponentID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// HashPayload computes the content address of a payload.
func HashPayload(payload []byte) ObjectHash {
	sum := blake3.Sum256(payload)
	return ObjectHash(hex.EncodeToString(sum[:]))
}

// EncodeObject serializes a record into canonical CBOR.
func EncodeObject(v any) ([]byte, error) {
	data, err := cborEnc.Marshal(v)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode object")
	}
	return data, nil
}

// NewTransferItem encodes a record into a transfer item addressed by the
// hash of its canonical encoding.
func NewTransferItem(kind ObjectKind, v any) (TransferItem, error) {
	payload, err := EncodeObject(v)
	if err != nil {
		return TransferItem{}, err
	}
	return TransferItem{Hash: HashPayload(payload), Kind: kind, Payload: payload}, nil
}

// DecodeComponentRecord deserializes a KindComponent payload.
func DecodeComponentRecord(payload []byte) (*ComponentRecord, error) {
	var r ComponentRecord
	if err := cborDec.Unmarshal(payload, &r); err != nil {
		return nil, zerr.Wrap(err, "failed to decode component record")
	}
	return &r, nil
}

// DecodeVersionContent deserializes a KindVersion payload.
func DecodeVersionContent(payload []byte) (*VersionContent, error) {
	var c VersionContent
	if err := cborDec.Unmarshal(payload, &c); err != nil {
		return nil, zerr.Wrap(err, "failed to decode version content")
	}
	return &c, nil
}

// DecodeLane deserializes a KindLane payload.
func DecodeLane(payload []byte) (*Lane, error) {
	var l Lane
	if err := cborDec.Unmarshal(payload, &l); err != nil {
		return nil, zerr.Wrap(err, "failed to decode lane")
	}
	return &l, nil
}
