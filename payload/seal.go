// Package payload prepares byte payloads before they are handed to the
// codec. Sealing wraps a payload in a checksummed, optionally
// compressed envelope so extraction can tell a genuine payload from
// noise; the ECC helpers expand a payload with error correction for
// carriers expected to suffer isolated bit damage. Both are caller-side
// concerns: the codec itself embeds whatever bytes it is given.
package payload

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrBadSeal          = errors.New("data is not a sealed payload")
	ErrChecksumMismatch = errors.New("sealed payload failed its checksum")
)

var magic = [4]byte{'S', 'Z', '0', '1'}

const (
	flagCompressed = 1 << 0

	checksumLen = 16
	headerLen   = len(magic) + 1 + 4 + checksumLen
)

type sealConfig struct {
	compress bool
}

type SealOption func(*sealConfig)

// WithoutCompression seals the payload verbatim. Useful when the
// payload is already compressed or encrypted and would not shrink.
func WithoutCompression() SealOption {
	return func(c *sealConfig) {
		c.compress = false
	}
}

// Seal wraps data in the envelope: magic, flags, original byte length,
// a truncated SHA-256 checksum of the original data, then the (by
// default zlib-compressed) body.
func Seal(data []byte, opts ...SealOption) []byte {
	cfg := sealConfig{compress: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	body := data
	var flags byte
	if cfg.compress {
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		_, _ = zw.Write(data)
		_ = zw.Close()
		body = buf.Bytes()
		flags |= flagCompressed
	}

	sum := sha256.Sum256(data)
	out := make([]byte, 0, headerLen+len(body))
	out = append(out, magic[:]...)
	out = append(out, flags)
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, sum[:checksumLen]...)
	return append(out, body...)
}

// Unseal verifies and unwraps a sealed payload, returning the original
// data. It fails with ErrBadSeal when the envelope is malformed and
// ErrChecksumMismatch when the recovered data does not hash to the
// sealed checksum.
func Unseal(sealed []byte) ([]byte, error) {
	if len(sealed) < headerLen || !bytes.Equal(sealed[:len(magic)], magic[:]) {
		return nil, ErrBadSeal
	}
	var (
		flags = sealed[len(magic)]
		size  = binary.BigEndian.Uint32(sealed[len(magic)+1 : len(magic)+5])
		sum   = sealed[len(magic)+5 : headerLen]
		body  = sealed[headerLen:]
	)

	data := body
	if flags&flagCompressed != 0 {
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadSeal, err)
		}
		defer zr.Close()
		data, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadSeal, err)
		}
	}
	if uint32(len(data)) != size {
		return nil, fmt.Errorf("%w: size %d declared, %d recovered", ErrBadSeal, size, len(data))
	}
	want := sha256.Sum256(data)
	if !bytes.Equal(want[:checksumLen], sum) {
		return nil, ErrChecksumMismatch
	}
	return data, nil
}
