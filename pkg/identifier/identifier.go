// Package identifier generates collision-resistant, prefixed, Base62-encoded
// identifiers. It is used throughout archivefs and keyprovider for values
// that only need to be locally unique and loggable, never persisted as part
// of the archive itself (staged mknod operation tokens, controller
// capability tokens, key provider instance ids).
package identifier

import (
	"errors"
	"regexp"
	"strings"

	"github.com/archivefs/archivefs/pkg/encoding"
	"github.com/archivefs/archivefs/pkg/random"
)

const (
	// PrefixOperation is the prefix used for staged Mknod operation ids.
	PrefixOperation = "opid"
	// PrefixController is the prefix used for key provider controller ids.
	PrefixController = "ctrl"
	// PrefixProvider is the prefix used for key provider instance ids.
	PrefixProvider = "prov"

	// requiredPrefixLength is the required length for identifier prefixes.
	requiredPrefixLength = 4
	// collisionResistantLength is the number of random bytes needed to ensure
	// collision-resistance in an identifier.
	collisionResistantLength = 32
	// targetBase62Length is the target length for the Base62-encoded portion
	// of the identifier. This is set to the maximum possible length that a
	// byte array of collisionResistantLength bytes will take to encode in
	// Base62 encoding. This length can be computed for n bytes using the
	// formula ceil(n*8*ln(2)/ln(62))).
	targetBase62Length = 43
)

// matcher is a regular expression that matches this package's identifiers.
var matcher = regexp.MustCompile("^[a-z]{4}_[0-9a-zA-Z]{43}$")

// New generates a new collision-resistant identifier with the specified
// prefix. The prefix must have a length of requiredPrefixLength and consist
// only of lowercase ASCII letters.
func New(prefix string) (string, error) {
	if len(prefix) != requiredPrefixLength {
		return "", errors.New("incorrect prefix length")
	}
	for _, r := range prefix {
		if !('a' <= r && r <= 'z') {
			return "", errors.New("invalid prefix character")
		}
	}

	value, err := random.New(collisionResistantLength)
	if err != nil {
		return "", err
	}

	encoded := encoding.EncodeBase62(value)
	if len(encoded) > targetBase62Length {
		panic("encoded random data length longer than expected")
	}

	builder := &strings.Builder{}
	builder.WriteString(prefix)
	builder.WriteRune('_')
	for i := targetBase62Length - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}
	builder.WriteString(encoded)

	return builder.String(), nil
}

// IsValid determines whether or not a string is a valid identifier minted by
// New.
func IsValid(value string) bool {
	return matcher.MatchString(value)
}
