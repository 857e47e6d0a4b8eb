package echo

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	bin "github.com/gagliardetto/binary"
)

// ErrMalformedAccount is returned when account data is too short to hold the buffer header.
var ErrMalformedAccount = errors.New("malformed account data")

// AuthorizedBufferHeader prefixes the data of every authorized buffer account.
type AuthorizedBufferHeader struct {
	BumpSeed   uint8  // 1 byte
	BufferSeed uint64 // 8 bytes LE
}

func (h *AuthorizedBufferHeader) Serialize(w io.Writer) error {
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(h.BumpSeed); err != nil {
		return err
	}
	if err := enc.Encode(h.BufferSeed); err != nil {
		return err
	}
	return nil
}

func (h *AuthorizedBufferHeader) Deserialize(data []byte) error {
	if len(data) < AuthorizedBufferHeaderSize {
		return fmt.Errorf("%w: %d bytes, header is %d", ErrMalformedAccount, len(data), AuthorizedBufferHeaderSize)
	}
	dec := bin.NewBorshDecoder(data[:AuthorizedBufferHeaderSize])
	if err := dec.Decode(&h.BumpSeed); err != nil {
		return err
	}
	if err := dec.Decode(&h.BufferSeed); err != nil {
		return err
	}
	return nil
}

// AuthorizedBuffer is the decoded content of an authorized buffer account.
type AuthorizedBuffer struct {
	AuthorizedBufferHeader
	Data []byte
}

func (b *AuthorizedBuffer) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.AuthorizedBufferHeader.Serialize(&buf); err != nil {
		return nil, err
	}
	buf.Write(b.Data)
	return buf.Bytes(), nil
}

// RequiredAccountSize is the account space the program allocates for a buffer of bufferSize bytes.
func RequiredAccountSize(bufferSize uint64) uint64 {
	return AuthorizedBufferHeaderSize + bufferSize
}

// ParseAccountData strips the buffer header from raw account data and returns the payload.
// The payload is not interpreted.
func ParseAccountData(raw []byte) ([]byte, error) {
	if len(raw) < AuthorizedBufferHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header is %d", ErrMalformedAccount, len(raw), AuthorizedBufferHeaderSize)
	}
	return append([]byte{}, raw[AuthorizedBufferHeaderSize:]...), nil
}

func DeserializeAuthorizedBuffer(raw []byte) (*AuthorizedBuffer, error) {
	var b AuthorizedBuffer
	if err := b.AuthorizedBufferHeader.Deserialize(raw); err != nil {
		return nil, err
	}
	data, err := ParseAccountData(raw)
	if err != nil {
		return nil, err
	}
	b.Data = data
	return &b, nil
}
