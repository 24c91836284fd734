package persistence

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// ErrEnvelope is returned when stored data is not a valid encrypted envelope.
var ErrEnvelope = errors.New("session is missing encrypted data envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

// envelope is what reaches the backend. Only the session ID stays readable.
type envelope struct {
	SessionID string `json:"session_id"`
	Encrypted string `json:"__encrypted__"`
}

// EncryptedCodec seals the output of an inner codec with AES-GCM.
type EncryptedCodec struct {
	inner  Codec
	config EncryptionConfig
}

// NewEncryptedCodec wraps inner (JSONCodec when nil). It fails when the active
// key is not 32 bytes long.
func NewEncryptedCodec(inner Codec, config EncryptionConfig) (*EncryptedCodec, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	if inner == nil {
		inner = JSONCodec{}
	}
	return &EncryptedCodec{inner: inner, config: config}, nil
}

// Encode serializes, encrypts and wraps the session in an opaque envelope.
func (c *EncryptedCodec) Encode(sess *domain.Session) ([]byte, error) {
	// 1. Serialize real session
	plainText, err := c.inner.Encode(sess)
	if err != nil {
		return nil, err
	}

	// 2. Encrypt
	ciphertext, err := encrypt(plainText, c.config.ActiveKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt session: %w", err)
	}

	// 3. Create envelope
	return json.Marshal(envelope{
		SessionID: sess.SessionID,
		Encrypted: base64.StdEncoding.EncodeToString(ciphertext),
	})
}

// Decode opens the envelope, trying the active key first and then the fallbacks.
func (c *EncryptedCodec) Decode(data []byte) (*domain.Session, error) {
	// 1. Load envelope
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Encrypted == "" {
		return nil, ErrEnvelope
	}

	// 2. Extract ciphertext
	ciphertext, err := base64.StdEncoding.DecodeString(env.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	// 3. Decrypt (Try Active, then Fallback)
	plainText, err := decryptWithRotation(ciphertext, c.config.ActiveKey, c.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session: %w", err)
	}

	// 4. Deserialize
	return c.inner.Decode(plainText)
}

// ParseKey decodes a base64 AES-256 key as found in configuration.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
