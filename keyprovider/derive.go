package keyprovider

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Iterations is fixed rather than configurable: this package offers a
// single, opinionated derivation suitable for turning a KeyProvider's
// passphrase into a fixed-length symmetric key, not a general-purpose KDF
// API. Callers with different requirements should use
// golang.org/x/crypto/pbkdf2 directly.
const pbkdf2Iterations = 100000

// DeriveKey derives a keyLen-byte symmetric key from password and salt using
// PBKDF2-HMAC-SHA256. It is offered as a convenience for ArchiveDriver
// implementations that need a fixed-length byte key (e.g. for AES) rather
// than the raw passphrase a KeyProvider hands back; encryption codecs
// themselves remain out of this module's scope.
func DeriveKey(password, salt []byte, keyLen int) []byte {
	return pbkdf2.Key(password, salt, pbkdf2Iterations, keyLen, sha256.New)
}
