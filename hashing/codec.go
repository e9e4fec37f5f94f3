package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// CodecOptions configures a [Codec]. Zero fields take the documented defaults.
type CodecOptions struct {
	// WorkFactor is the fallback used whenever [Codec.Hash] receives a work
	// factor outside [MinWorkFactor, MaxWorkFactor], and by [Codec.Make].
	// Default: [DefaultWorkFactor] (8).
	WorkFactor int

	// Identifier is the version tag used by [Codec.Make].
	// Default: [DefaultIdentifier] ("2y").
	Identifier Identifier

	// Rand supplies salt bytes. Default: crypto/rand.Reader.
	Rand io.Reader

	// Crypter is the bcrypt primitive. Default: [BlowfishCrypter].
	Crypter Crypter

	// Logger receives debug events. Passwords and hashes are never logged.
	// Default: a disabled logger.
	Logger *zerolog.Logger
}

// DefaultCodecOptions returns CodecOptions with [DefaultWorkFactor] and
// [DefaultIdentifier].
func DefaultCodecOptions() CodecOptions {
	return CodecOptions{WorkFactor: DefaultWorkFactor, Identifier: DefaultIdentifier}
}

// Codec builds bcrypt salts, hands them to the bcrypt primitive and checks
// stored hashes.
//
// # Thread safety
//
// Codec is immutable after construction and safe for concurrent use as long
// as its random source is; crypto/rand.Reader is.
type Codec struct {
	workFactor int
	identifier Identifier
	rand       io.Reader
	crypter    Crypter
	log        zerolog.Logger
}

var _ Hasher = (*Codec)(nil)

// NewCodec constructs a Codec.
//
// It returns [ErrInvalidOption] if the fallback work factor or identifier is
// not acceptable, and [ErrPlatformUnsupported] if the random source cannot be
// read from.
func NewCodec(opts CodecOptions) (*Codec, error) {
	if opts.WorkFactor == 0 {
		opts.WorkFactor = DefaultWorkFactor
	}
	if !ValidWorkFactor(opts.WorkFactor) {
		return nil, fmt.Errorf("%w: bcrypt work factor %d must be in [%d, %d]",
			ErrInvalidOption, opts.WorkFactor, MinWorkFactor, MaxWorkFactor)
	}
	if opts.Identifier == "" {
		opts.Identifier = DefaultIdentifier
	}
	if !opts.Identifier.Valid() {
		return nil, fmt.Errorf("%w: bcrypt identifier %q must be one of %v",
			ErrInvalidOption, opts.Identifier, Identifiers())
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	if opts.Crypter == nil {
		opts.Crypter = BlowfishCrypter{}
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	var probe [1]byte
	if _, err := io.ReadFull(opts.Rand, probe[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnsupported, err)
	}

	return &Codec{
		workFactor: opts.WorkFactor,
		identifier: opts.Identifier,
		rand:       opts.Rand,
		crypter:    opts.Crypter,
		log:        logger.With().Str("driver", string(DriverBcrypt)).Logger(),
	}, nil
}

// Driver returns [DriverBcrypt].
func (c *Codec) Driver() DriverName { return DriverBcrypt }

// WorkFactor returns the fallback work factor.
func (c *Codec) WorkFactor() int { return c.workFactor }

// Identifier returns the version tag used by [Codec.Make].
func (c *Codec) Identifier() Identifier { return c.identifier }

// Hash hashes password with a fresh salt and returns the 60-character
// stored hash.
//
// A workFactor outside [MinWorkFactor, MaxWorkFactor], including 0, is
// replaced by the codec's fallback rather than rejected. id is passed through
// unchecked: a hash made with a tag other than 2a, 2x or 2y is produced if
// the primitive accepts it, but [Codec.Verify] will never accept it.
//
// Errors wrap [ErrRandomSourceUnavailable] or whatever the primitive
// returned, such as [ErrPasswordContainsNUL].
func (c *Codec) Hash(password string, workFactor int, id Identifier) (string, error) {
	if !ValidWorkFactor(workFactor) {
		if workFactor != 0 {
			c.log.Debug().
				Int("requested", workFactor).
				Int("work_factor", c.workFactor).
				Msg("work factor out of range, using fallback")
		}
		workFactor = c.workFactor
	}

	salt, err := NewSalt(c.rand, workFactor, id)
	if err != nil {
		return "", err
	}

	hash, err := c.crypter.Crypt([]byte(password), salt.String())
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return hash, nil
}

// Make hashes password with the codec's fallback work factor and identifier.
func (c *Codec) Make(password string) (string, error) {
	return c.Hash(password, c.workFactor, c.identifier)
}

// Verify reports whether password matches storedHash.
//
// A wrong password, a malformed hash and an unsupported identifier all give
// false: callers cannot tell them apart. Use [ParseStoredHash] beforehand
// when the distinction matters, e.g. for auditing stored data.
//
// The final comparison runs in constant time.
func (c *Codec) Verify(password, storedHash string) bool {
	id, ok := identifierOf(storedHash)
	if !ok || !id.Valid() {
		c.log.Debug().Msg("rejecting hash with unsupported identifier")
		return false
	}

	derived, err := c.crypter.Crypt([]byte(password), storedHash)
	if err != nil {
		c.log.Debug().Err(err).Msg("bcrypt primitive rejected stored hash")
		return false
	}

	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}

// Check is [Codec.Verify] in [Hasher] form. The error is always nil.
func (c *Codec) Check(password, hash string) (bool, error) {
	return c.Verify(password, hash), nil
}

// NeedsRehash returns true if the work factor or identifier encoded in hash
// differ from the codec's configuration.
func (c *Codec) NeedsRehash(hash string) (bool, error) {
	h, err := ParseStoredHash(hash)
	if err != nil {
		return false, err
	}
	return h.WorkFactor != c.workFactor || h.Identifier != c.identifier, nil
}

// Info extracts the work factor and identifier from a bcrypt hash string.
//
// Returned [HashInfo].Params:
//   - "cost"       → int
//   - "identifier" → string
func (c *Codec) Info(hash string) (HashInfo, error) {
	h, err := ParseStoredHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverBcrypt,
		Params: map[string]any{
			"cost":       h.WorkFactor,
			"identifier": string(h.Identifier),
		},
	}, nil
}
