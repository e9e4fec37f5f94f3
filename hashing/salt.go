package hashing

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinWorkFactor is the lowest accepted bcrypt work factor.
	MinWorkFactor = bcrypt.MinCost // 4
	// MaxWorkFactor is the highest accepted bcrypt work factor.
	MaxWorkFactor = bcrypt.MaxCost // 31
	// DefaultWorkFactor is used when a work factor is unspecified or out of
	// range and the codec was not configured with another fallback.
	DefaultWorkFactor = 8

	// saltRawLen is the number of random bytes drawn per salt.
	saltRawLen = 16
	// encodedSaltLen is the length of the salt segment; the bcrypt encoding
	// of 16 bytes drops the final 2 padding bits.
	encodedSaltLen = 22
)

// ValidWorkFactor reports whether w lies in [MinWorkFactor, MaxWorkFactor].
func ValidWorkFactor(w int) bool {
	return w >= MinWorkFactor && w <= MaxWorkFactor
}

// Salt is the bcrypt setting string handed to the primitive:
//
//	$<identifier>$<work factor, 2 digits>$<22 encoded salt characters>
type Salt struct {
	Identifier Identifier
	WorkFactor int
	// Encoded is the 22-character salt segment.
	Encoded string
}

// NewSalt draws 16 bytes from r and builds a salt for the given work factor
// and identifier. Neither argument is validated.
//
// The salt segment is the standard base64 encoding of the random bytes with
// '+' replaced by '.', cut to 22 characters. Every character therefore lies
// in the bcrypt alphabet ./A-Za-z0-9.
func NewSalt(r io.Reader, workFactor int, id Identifier) (Salt, error) {
	raw := make([]byte, saltRawLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Salt{}, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}

	encoded := strings.ReplaceAll(base64.StdEncoding.EncodeToString(raw), "+", ".")
	return Salt{
		Identifier: id,
		WorkFactor: workFactor,
		Encoded:    encoded[:encodedSaltLen],
	}, nil
}

// String renders the salt in its wire form, e.g. "$2y$08$N9qo8uLOickgx2ZMRZoMye".
func (s Salt) String() string {
	return fmt.Sprintf("$%s$%02d$%s", s.Identifier, s.WorkFactor, s.Encoded)
}
