package oauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpaqueToken(t *testing.T) {
	now := time.Now()
	a := opaqueToken("seed", now)
	b := opaqueToken("seed", now)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
	assert.NotContains(t, a, "=")
}
