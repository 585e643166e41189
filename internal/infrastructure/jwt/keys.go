package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ipede/freecourse-services/internal/domain"
	"go.uber.org/zap"
)

// RSAKeySize is the modulus size of generated signing keys
const RSAKeySize = 2048

// KeyManager holds the RSA key pair used to sign tokens
type KeyManager struct {
	privateKey *rsa.PrivateKey
	keyID      string
	logger     *zap.Logger
}

// NewKeyManager loads the PEM private key at keyPath, generating and storing a
// new one when none exists. The public half is always written to pubPath so
// resource servers can verify tokens without the private key.
func NewKeyManager(keyPath, pubPath string, logger *zap.Logger) (*KeyManager, error) {
	if keyPath == "" {
		return nil, domain.ErrInvalidKeyConfig
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}

	key, err := loadPrivateKey(keyPath)
	if err != nil {
		logger.Info("no usable signing key found, generating", zap.String("path", keyPath), zap.Error(err))
		key, err = generatePrivateKey(keyPath)
		if err != nil {
			return nil, err
		}
	}

	if pubPath != "" {
		if err := writePublicKey(pubPath, &key.PublicKey); err != nil {
			return nil, err
		}
	}

	return NewKeyManagerFromKey(key, logger), nil
}

// NewKeyManagerFromKey wraps an in-memory key
func NewKeyManagerFromKey(key *rsa.PrivateKey, logger *zap.Logger) *KeyManager {
	return &KeyManager{
		privateKey: key,
		keyID:      generateKeyID(&key.PublicKey),
		logger:     logger,
	}
}

// Sign signs claims with RS256 and stamps the key id header
func (k *KeyManager) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = k.keyID
	return token.SignedString(k.privateKey)
}

func (k *KeyManager) PublicKey() *rsa.PublicKey {
	return &k.privateKey.PublicKey
}

func (k *KeyManager) KeyID() string {
	return k.keyID
}

// LoadPublicKey reads a PEM file holding either a PKIX public key or a PKCS1
// private key, returning the RSA public key.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: %s is not PEM", domain.ErrInvalidKeyConfig, path)
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an RSA key", domain.ErrInvalidKeyConfig, path)
		}
		return rsaPub, nil
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
		}
		return &key.PublicKey, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", domain.ErrInvalidKeyConfig, block.Type)
	}
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, domain.ErrInvalidKeyConfig
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

func generatePrivateKey(path string) (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(path, privateKeyPEM, 0600); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	return key, nil
}

func writePublicKey(path string, pub *rsa.PublicKey) error {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	publicKeyPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	if err := os.WriteFile(path, publicKeyPEM, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	return nil
}

// generateKeyID derives a stable key id from the public key
func generateKeyID(pub *rsa.PublicKey) string {
	data := append(pub.N.Bytes(), byte(pub.E>>16), byte(pub.E>>8), byte(pub.E))
	hash := sha256.Sum256(data)
	return base64.RawURLEncoding.EncodeToString(hash[:16])
}
