// Package hashing builds and checks bcrypt password hashes.
//
// # Architecture
//
// The central type is [Codec]. It chooses a work factor, draws 16 random
// bytes, encodes them into a bcrypt salt and hands the salt to a [Crypter],
// the bcrypt primitive. [BlowfishCrypter] is the default primitive; any
// implementation producing the standard wire format can be swapped in.
//
// [Codec] also satisfies the driver-style [Hasher] interface, so callers can
// depend on the interface and hash with configured defaults.
//
// # Quick start
//
//	c, err := hashing.NewCodec(hashing.DefaultCodecOptions())
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := c.Hash("correct horse", 10, hashing.Identifier2y) // "$2y$10$..."
//	ok      := c.Verify("correct horse", hash)                   // true
//
// # Wire format
//
//	$<identifier>$<work factor>$<22-char salt><31-char digest>
//
// The identifier is one of 2a, 2x or 2y and the work factor is zero-padded
// to two digits. Salt and digest use the alphabet ./A-Za-z0-9.
//
// # Failure modes
//
// [Codec.Hash] returns errors: [ErrRandomSourceUnavailable] when entropy
// cannot be drawn, or the primitive's error. [Codec.Verify] returns only a
// boolean; a wrong password and a corrupt or foreign hash both yield false.
// Work factors outside [4, 31] are not errors either; they fall back to the
// codec's configured default.
package hashing
