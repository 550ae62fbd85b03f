package infra

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Cifrador applies AES-256-CBC with a random IV per value. The stored
// format is "ivHex:cipherHex", compatible with values encrypted by previous
// deployments. Used for SMTP credentials and device unlock passwords.
type Cifrador struct {
	key []byte
}

// NewCifrador derives the AES key from the first 32 bytes of the configured
// ENCRYPTION_KEY. Shorter keys are rejected at config load, so this only
// re-checks as a guard for direct construction in tests.
func NewCifrador(key string) (*Cifrador, error) {
	if len(key) < 32 {
		return nil, errors.New("cifrador: la clave debe tener al menos 32 caracteres")
	}
	return &Cifrador{key: []byte(key[:32])}, nil
}

func (c *Cifrador) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("cifrador: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("cifrador: iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(out), nil
}

func (c *Cifrador) Decrypt(encoded string) (string, error) {
	ivHex, cipherHex, ok := strings.Cut(encoded, ":")
	if !ok {
		return "", errors.New("cifrador: formato invalido")
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", errors.New("cifrador: iv invalido")
	}
	data, err := hex.DecodeString(cipherHex)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errors.New("cifrador: cifrado invalido")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("cifrador: %w", err)
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("cifrador: padding invalido")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("cifrador: padding invalido")
		}
	}
	return data[:len(data)-n], nil
}
