package solabi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Encoding layout constants.
const (
	// WordSize is the width of every head slot and the padding unit of every tail.
	WordSize = 32

	// SelectorSize is the length of a function selector.
	SelectorSize = 4

	// AddressSize is the length of an address inside its word.
	AddressSize = common.AddressLength
)

// encodeLength produces the big-endian word for a length or offset.
func encodeLength(n int) []byte {
	return math.U256Bytes(new(big.Int).SetUint64(uint64(n)))
}

// padRight right-pads b with zeros to the next word boundary.
func padRight(b []byte) []byte {
	size := (len(b) + WordSize - 1) / WordSize * WordSize
	if size == len(b) {
		out := make([]byte, size)
		copy(out, b)
		return out
	}
	return common.RightPadBytes(b, size)
}

// checkBounds reports whether length bytes at offset fit inside buf.
func checkBounds(buf []byte, offset, length uint64) error {
	size := uint64(len(buf))
	if offset > size || length > size-offset {
		return &OutOfBoundsError{Offset: offset, Length: length, Size: len(buf)}
	}
	return nil
}

// readWord returns the 32-byte word at offset.
func readWord(buf []byte, offset uint64) ([]byte, error) {
	if err := checkBounds(buf, offset, WordSize); err != nil {
		return nil, err
	}
	return buf[offset : offset+WordSize], nil
}

// readSize reads a word holding an offset or length and checks that it
// cannot point past the end of buf.
func readSize(buf []byte, offset uint64) (uint64, error) {
	word, err := readWord(buf, offset)
	if err != nil {
		return 0, err
	}
	n := new(big.Int).SetBytes(word)
	if !n.IsUint64() || n.Uint64() > uint64(len(buf)) {
		return 0, &OutOfBoundsError{Offset: offset, Length: WordSize, Size: len(buf)}
	}
	return n.Uint64(), nil
}

// SplitWords slices an encoded payload into its 32-byte words.
// Useful for debugging and testing.
func SplitWords(data []byte) ([]common.Hash, error) {
	if len(data)%WordSize != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of %d", ErrMalformedWord, len(data), WordSize)
	}
	words := make([]common.Hash, 0, len(data)/WordSize)
	for i := 0; i < len(data); i += WordSize {
		words = append(words, common.BytesToHash(data[i:i+WordSize]))
	}
	return words, nil
}

// JoinWords concatenates words into a single buffer, e.g. event topics.
func JoinWords(words []common.Hash) []byte {
	out := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		out = append(out, w.Bytes()...)
	}
	return out
}
