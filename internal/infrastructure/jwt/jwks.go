package jwt

import (
	"fmt"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKS returns the key set advertised at the jwks endpoint
func (k *KeyManager) JWKS() (jwk.Set, error) {
	key, err := jwk.FromRaw(k.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	for name, value := range map[string]interface{}{
		jwk.KeyIDKey:     k.keyID,
		jwk.AlgorithmKey: jwa.RS256,
		jwk.KeyUsageKey:  jwk.ForSignature,
	} {
		if err := key.Set(name, value); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
		}
	}

	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyConfig, err)
	}
	return set, nil
}
