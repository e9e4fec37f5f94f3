package hashing

// DriverName identifies a hashing algorithm driver.
type DriverName string

// DriverBcrypt names the bcrypt driver implemented by [Codec].
const DriverBcrypt DriverName = "bcrypt"

// Hasher is the driver-style interface satisfied by [Codec], for callers that
// want to hash with configured defaults and depend on an interface rather
// than a concrete type.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password with the configured defaults.
	// A fresh salt is generated for every call, so two calls with the same
	// password produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded hash.
	Check(password, hash string) (bool, error)

	// NeedsRehash returns true when the hash was produced with parameters
	// different from the hasher's current configuration. Callers should
	// re-hash the password on next successful login when this returns true.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm that produced the hash.
	Driver DriverName

	// Params holds algorithm-specific parameters extracted from the hash string.
	//
	// For bcrypt:
	//   "cost"       → int
	//   "identifier" → string
	Params map[string]any
}
