package hashing

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// Crypter is the bcrypt primitive the [Codec] delegates to.
//
// Crypt derives the full hash string for password from setting, which is
// either a salt ("$2y$10$" + 22 characters) or a complete stored hash whose
// first 29 characters are read as the salt. Implementations must be safe for
// concurrent use.
type Crypter interface {
	Crypt(password []byte, setting string) (string, error)
}

// magicCipherData is "OrpheanBeholderScryDoubt".
var magicCipherData = []byte{
	0x4f, 0x72, 0x70, 0x68,
	0x65, 0x61, 0x6e, 0x42,
	0x65, 0x68, 0x6f, 0x6c,
	0x64, 0x65, 0x72, 0x53,
	0x63, 0x72, 0x79, 0x44,
	0x6f, 0x75, 0x62, 0x74,
}

// BlowfishCrypter is the default [Crypter], built on the salted Blowfish key
// schedule from golang.org/x/crypto/blowfish. Its output is interchangeable
// with golang.org/x/crypto/bcrypt and crypt_blowfish for every identifier of
// the form "2<letter>".
//
// Only the first 72 bytes of a password take part in the key schedule.
// The salt segment of the output is re-encoded from the decoded salt bytes,
// so the last salt character is canonical even when the input's was not.
type BlowfishCrypter struct{}

var _ Crypter = BlowfishCrypter{}

// Crypt implements [Crypter].
func (BlowfishCrypter) Crypt(password []byte, setting string) (string, error) {
	if bytes.IndexByte(password, 0) >= 0 {
		return "", ErrPasswordContainsNUL
	}

	prefix, cost, salt, err := parseSetting(setting)
	if err != nil {
		return "", err
	}

	// C implementations feed the terminating NUL into the key schedule.
	key := make([]byte, len(password)+1)
	copy(key, password)

	c, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	for i, rounds := uint64(0), uint64(1)<<cost; i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}

	ctext := make([]byte, len(magicCipherData))
	copy(ctext, magicCipherData)
	for i := 0; i < len(ctext); i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(ctext[i:i+8], ctext[i:i+8])
		}
	}

	return fmt.Sprintf("%s%02d$%s%s",
		prefix, cost, encodeBcryptBase64(salt), encodeBcryptBase64(ctext[:digestRawLen])), nil
}

// parseSetting splits "$2y$10$<22 chars>..." into its "$2y$" prefix, the work
// factor and the decoded salt bytes. Anything after the salt is ignored.
func parseSetting(setting string) (prefix string, cost int, salt []byte, err error) {
	if len(setting) < settingLen {
		return "", 0, nil, fmt.Errorf("%w: too short", ErrInvalidSetting)
	}
	if setting[0] != '$' || setting[1] != '2' || setting[2] < 'a' || setting[2] > 'z' ||
		setting[3] != '$' || setting[6] != '$' {
		return "", 0, nil, fmt.Errorf("%w: not a bcrypt setting", ErrInvalidSetting)
	}

	cost, err = parseWorkFactor(setting[4:6])
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	salt, err = decodeBcryptBase64(setting[7:settingLen])
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: salt: %v", ErrInvalidSetting, err)
	}

	return setting[:4], cost, salt, nil
}
