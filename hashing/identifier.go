package hashing

// Identifier is the bcrypt version tag embedded after the first '$' of a
// salt or hash, e.g. "2y" in "$2y$10$...".
type Identifier string

const (
	// Identifier2a is the original OpenBSD revision tag.
	Identifier2a Identifier = "2a"
	// Identifier2x marks hashes produced by the pre-2011 crypt_blowfish
	// sign-extension bug.
	Identifier2x Identifier = "2x"
	// Identifier2y is the corrected crypt_blowfish tag and the default.
	Identifier2y Identifier = "2y"

	// DefaultIdentifier is the tag used by [Codec.Make] unless configured.
	DefaultIdentifier = Identifier2y
)

// Identifiers returns the accepted version tags in a fresh slice.
func Identifiers() []Identifier {
	return []Identifier{Identifier2a, Identifier2x, Identifier2y}
}

// Valid reports whether id is one of the accepted version tags.
func (id Identifier) Valid() bool {
	switch id {
	case Identifier2a, Identifier2x, Identifier2y:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (id Identifier) String() string { return string(id) }

// identifierOf returns the would-be identifier at offset 1-2 of s. The
// second return value is false when s is too short to hold one.
func identifierOf(s string) (Identifier, bool) {
	if len(s) < 3 {
		return "", false
	}
	return Identifier(s[1:3]), true
}
