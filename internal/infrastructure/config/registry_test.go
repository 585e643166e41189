package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
api_resources:
  - name: resource_catalog
    scopes: [catalog_fullpermission]
api_scopes:
  - name: catalog_fullpermission
    description: Full access to the catalog API
  - name: offline_access
clients:
  - id: mobile
    name: Mobile app
    secrets: [s3cret]
    grant_types: [password, refresh_token]
    scopes: [catalog_fullpermission, offline_access]
`

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	client, ok := reg.Client("WebMvcClientForUser")
	require.True(t, ok)
	assert.True(t, client.AllowsGrant(domain.GrantTypePassword))
	assert.True(t, client.VerifySecret("secret"))

	machine, ok := reg.Client("WebMvcClient")
	require.True(t, ok)
	assert.False(t, machine.AllowsGrant(domain.GrantTypePassword))
	assert.True(t, machine.AllowsGrant(domain.GrantTypeClientCredentials))
}

func TestLoadRegistry(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		reg, err := LoadRegistry("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRegistry(), reg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clients.yaml")
		require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

		reg, err := LoadRegistry(path)
		require.NoError(t, err)

		client, ok := reg.Client("mobile")
		require.True(t, ok)
		assert.Equal(t, "Mobile app", client.Name)
		assert.True(t, client.VerifySecret("s3cret"))
		assert.Equal(t, []string{"resource_catalog"}, reg.Audiences(client.Scopes))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "clients: [:"},
		{"client without id", "clients:\n  - name: x\n"},
		{"duplicate client", "clients:\n  - id: a\n  - id: a\n"},
		{"undeclared scope", "clients:\n  - id: a\n    scopes: [ghost]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
