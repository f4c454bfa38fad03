// Package legacycrypt implements the reversible AES-256-CBC credential codec
// used by the system this platform was migrated from. New credentials are
// bcrypt-hashed; this codec exists solely so accounts imported with
// "<ivHex>:<cipherHex>" password values can still sign in (and be upgraded
// to bcrypt on first successful login).
package legacycrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

// KeySize is the required key length: 32 bytes, supplied as 64 hex chars.
const KeySize = 32

var (
	ErrInvalidKey    = errors.New("encryption key must be 64 hex characters (32 bytes)")
	ErrInvalidFormat = errors.New("ciphertext must be '<ivHex>:<cipherHex>'")
)

// Codec encrypts and decrypts in the legacy wire format.
type Codec struct {
	key []byte
}

// NewCodec parses the hex key from the ENCRYPTION_KEY environment value.
func NewCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	return &Codec{key: key}, nil
}

// Encrypt returns "<ivHex>:<cipherHex>" with a fresh random IV per call.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Any malformed input yields an error, never a panic.
func (c *Codec) Decrypt(value string) (string, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrInvalidFormat
	}
	data, err := hex.DecodeString(parts[1])
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", ErrInvalidFormat
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// Compare decrypts the stored value and compares it with the candidate.
// It returns false on any decryption failure (malformed value, wrong key);
// it never returns an error to the caller.
func (c *Codec) Compare(stored, candidate string) bool {
	plain, err := c.Decrypt(stored)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(candidate)) == 1
}

// IsLegacyValue reports whether a stored credential looks like the legacy
// "<ivHex>:<cipherHex>" format rather than a bcrypt hash.
func IsLegacyValue(stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) != aes.BlockSize*2 {
		return false
	}
	_, err := hex.DecodeString(parts[0])
	return err == nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidFormat
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrInvalidFormat
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidFormat
		}
	}
	return data[:len(data)-n], nil
}
