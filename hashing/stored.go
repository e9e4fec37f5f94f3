package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// settingLen is the length of "$2y$10$" plus the salt segment.
	settingLen = 7 + encodedSaltLen
	// digestRawLen is the number of ciphertext bytes kept in the digest;
	// C implementations encode only 23 of the 24 bytes produced.
	digestRawLen = 23
	// encodedDigestLen is the length of the digest segment.
	encodedDigestLen = 31
	// storedHashLen is the length of a complete hash string.
	storedHashLen = settingLen + encodedDigestLen
)

// bcEncoding is bcrypt's radix-64 variant. Decoding is not strict, so the
// unused low bits of the last character are ignored.
var bcEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)

// StoredHash is a parsed bcrypt hash:
//
//	$<identifier>$<work factor>$<22-char salt><31-char digest>
//
// Values returned by [ParseStoredHash] always satisfy that shape with an
// accepted identifier and a work factor in range.
type StoredHash struct {
	Identifier Identifier
	WorkFactor int
	// Salt is the 22-character encoded salt segment.
	Salt string
	// Digest is the 31-character encoded digest segment.
	Digest string
}

// ParseStoredHash parses s into a [StoredHash].
//
// It returns [ErrUnsupportedIdentifier] when the version tag is not 2a, 2x
// or 2y, and [ErrInvalidHash] for every other structural problem.
func ParseStoredHash(s string) (StoredHash, error) {
	if len(s) != storedHashLen {
		return StoredHash{}, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidHash, storedHashLen, len(s))
	}
	if s[0] != '$' || s[3] != '$' || s[6] != '$' {
		return StoredHash{}, fmt.Errorf("%w: malformed field separators", ErrInvalidHash)
	}

	id := Identifier(s[1:3])
	if !id.Valid() {
		return StoredHash{}, fmt.Errorf("%w: %q", ErrUnsupportedIdentifier, id)
	}

	cost, err := parseWorkFactor(s[4:6])
	if err != nil {
		return StoredHash{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, digest := s[7:settingLen], s[settingLen:]
	if !isBcryptBase64(salt) || !isBcryptBase64(digest) {
		return StoredHash{}, fmt.Errorf("%w: characters outside the bcrypt alphabet", ErrInvalidHash)
	}

	return StoredHash{
		Identifier: id,
		WorkFactor: cost,
		Salt:       salt,
		Digest:     digest,
	}, nil
}

// String renders h back into its 60-character wire form.
func (h StoredHash) String() string {
	return h.Setting() + h.Digest
}

// Setting returns the salt part of the hash, which is what the primitive
// re-reads on verification.
func (h StoredHash) Setting() string {
	return Salt{Identifier: h.Identifier, WorkFactor: h.WorkFactor, Encoded: h.Salt}.String()
}

// SaltBytes decodes the 16 raw salt bytes.
func (h StoredHash) SaltBytes() ([]byte, error) {
	return decodeBcryptBase64(h.Salt)
}

// DigestBytes decodes the 23 raw digest bytes.
func (h StoredHash) DigestBytes() ([]byte, error) {
	return decodeBcryptBase64(h.Digest)
}

func parseWorkFactor(field string) (int, error) {
	if len(field) != 2 || field[0] < '0' || field[0] > '9' || field[1] < '0' || field[1] > '9' {
		return 0, fmt.Errorf("work factor %q is not two digits", field)
	}
	cost, _ := strconv.Atoi(field)
	if !ValidWorkFactor(cost) {
		return 0, fmt.Errorf("work factor %d must be in [%d, %d]", cost, MinWorkFactor, MaxWorkFactor)
	}
	return cost, nil
}

// isBcryptBase64 guards decoding: encoding/base64 silently skips '\r' and
// '\n', which must not be accepted inside a hash.
func isBcryptBase64(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(bcryptAlphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

func encodeBcryptBase64(src []byte) string {
	return bcEncoding.EncodeToString(src)
}

func decodeBcryptBase64(s string) ([]byte, error) {
	if !isBcryptBase64(s) {
		return nil, fmt.Errorf("%w: characters outside the bcrypt alphabet", ErrInvalidHash)
	}
	b, err := bcEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return b, nil
}
