package keystream

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/keymill/keymill/internal/errors"
	"github.com/keymill/keymill/pkg/types"
)

// CipherContext is one chunk's keystream source: the run-wide key paired
// with the chunk's IV. A context lives inside a single fill task and is
// never shared or reused across chunks.
type CipherContext struct {
	stream cipher.Stream
}

// NewCipherContext validates the key and IV lengths and seeds an AES-128
// CTR stream from them. The lengths are fixed at 16 bytes end to end, but
// they are checked rather than assumed.
func NewCipherContext(key, iv []byte) (*CipherContext, error) {
	if len(key) != types.KeySize {
		return nil, errors.NewCipherError(errors.CodeInvalidKeyLength,
			fmt.Sprintf("key must be %d bytes, got %d", types.KeySize, len(key)))
	}
	if len(iv) != types.IVSize {
		return nil, errors.NewCipherError(errors.CodeInvalidIVLength,
			fmt.Sprintf("iv must be %d bytes, got %d", types.IVSize, len(iv)))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCategoryCipher, errors.CodeInvalidKeyLength,
			"cipher init failed", err)
	}

	return &CipherContext{stream: cipher.NewCTR(block, iv)}, nil
}

// Fill XORs the next len(span) bytes of keystream into span, in place.
// Spans are zero-filled at allocation, so after the XOR the span holds the
// raw keystream. No byte outside span is touched.
func (c *CipherContext) Fill(span []byte) {
	c.stream.XORKeyStream(span, span)
}

// Fill seeds a fresh CTR stream from (key, iv) and writes keystream over
// span in one contiguous pass. The counter starts at the IV and advances
// once per 16-byte block.
func Fill(key, iv, span []byte) error {
	ctx, err := NewCipherContext(key, iv)
	if err != nil {
		return err
	}
	ctx.Fill(span)
	return nil
}
