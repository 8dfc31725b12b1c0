// internal/auth/password.go
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonIterations  uint32 = 1
	argonMemoryKiB   uint32 = 64 * 1024
	argonParallelism uint8  = 4
	argonSaltLen            = 16
	argonKeyLen      uint32 = 32
)

var errMalformedHash = errors.New("malformed password hash")

// PasswordHasher derives and checks argon2id credentials. Stored hashes are
// self-describing, so cost parameters can be raised later without
// invalidating existing rows.
type PasswordHasher struct {
	iterations  uint32
	memoryKiB   uint32
	parallelism uint8
	keyLen      uint32
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		iterations:  argonIterations,
		memoryKiB:   argonMemoryKiB,
		parallelism: argonParallelism,
		keyLen:      argonKeyLen,
	}
}

// Hash derives a key from the password under a fresh random salt and encodes
// it in the modular crypt form $argon2id$v=19$m=..,t=..,p=..$salt$key.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memoryKiB, h.parallelism, h.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKiB, h.iterations, h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the key under the parameters recorded in the stored
// hash and compares in constant time.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	salt, key, iterations, memoryKiB, parallelism, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (salt, key []byte, iterations, memoryKiB uint32, parallelism uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unsupported argon2 version", errMalformedHash)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: bad salt encoding", errMalformedHash)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: bad key encoding", errMalformedHash)
	}
	return salt, key, iterations, memoryKiB, parallelism, nil
}
