package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	hash, err := codec.Hash(password, 10, hashing.Identifier2y)
//	if errors.Is(err, hashing.ErrRandomSourceUnavailable) {
//	    // entropy could not be drawn; retrying is up to the caller
//	}
var (
	// ErrPlatformUnsupported is returned by [NewCodec] when the random source
	// required for salt generation cannot supply bytes.
	ErrPlatformUnsupported = errors.New("hashing: secure random source is unavailable on this platform")

	// ErrRandomSourceUnavailable is returned by [Codec.Hash] when the random
	// source fails to supply the 16 salt bytes.
	ErrRandomSourceUnavailable = errors.New("hashing: could not read from secure random source")

	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has an unrecognised shape, a bad cost field, or invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrUnsupportedIdentifier is returned when a hash carries a version tag
	// outside of 2a, 2x and 2y.
	ErrUnsupportedIdentifier = errors.New("hashing: unsupported hash format")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., a default
	// work factor below 4 or above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrInvalidSetting is returned by a [Crypter] when the salt or stored
	// hash it was given is not a usable bcrypt setting.
	ErrInvalidSetting = errors.New("hashing: invalid bcrypt setting")

	// ErrPasswordContainsNUL is returned by [BlowfishCrypter] for passwords
	// containing a NUL byte. C implementations stop reading at the first NUL,
	// so such a password would not hash the same everywhere.
	ErrPasswordContainsNUL = errors.New("hashing: password contains a NUL byte")
)
