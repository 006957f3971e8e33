package auth

import (
	"crypto/rsa"
	"os"
	"strings"

	"authcore/config"
	"authcore/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// rsaKeyProvider holds the key pair for the lifetime of the process. It is
// never mutated after construction, so concurrent reads need no locking.
type rsaKeyProvider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewKeyProvider loads the signing key pair from configuration.
// Missing or malformed material is a startup failure.
func NewKeyProvider(cfg *config.Config) (service.KeyProvider, error) {
	if cfg.JWT == nil {
		return nil, errors.New("jwt config is required")
	}

	privatePEM, err := readPEM(cfg.JWT.PrivateKey, cfg.JWT.PrivateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load private key")
	}
	publicPEM, err := readPEM(cfg.JWT.PublicKey, cfg.JWT.PublicKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load public key")
	}

	return NewKeyProviderFromPEM(privatePEM, publicPEM)
}

// NewKeyProviderFromPEM parses a PEM encoded RSA key pair and checks that both halves belong together.
func NewKeyProviderFromPEM(privatePEM, publicPEM []byte) (service.KeyProvider, error) {
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, errors.New("public key does not match private key")
	}

	return &rsaKeyProvider{privateKey: priv, publicKey: pub}, nil
}

func (p *rsaKeyProvider) PrivateKey() *rsa.PrivateKey {
	return p.privateKey
}

func (p *rsaKeyProvider) PublicKey() *rsa.PublicKey {
	return p.publicKey
}

func readPEM(inline, path string) ([]byte, error) {
	if s := strings.TrimSpace(inline); s != "" {
		return []byte(s), nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("neither inline PEM nor key path configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}
