package config

import (
	"fmt"
	"os"

	"github.com/ipede/freecourse-services/internal/domain"
	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk shape of the client/scope registry.
// Client secrets are given in clear text and hashed on load.
type registryFile struct {
	ApiResources []domain.ApiResource `yaml:"api_resources"`
	ApiScopes    []domain.ApiScope    `yaml:"api_scopes"`
	Clients      []struct {
		ID         string   `yaml:"id"`
		Name       string   `yaml:"name"`
		Secrets    []string `yaml:"secrets"`
		GrantTypes []string `yaml:"grant_types"`
		Scopes     []string `yaml:"scopes"`
	} `yaml:"clients"`
}

// DefaultRegistry returns the built-in registry
func DefaultRegistry() *domain.Registry {
	return &domain.Registry{
		ApiResources: []domain.ApiResource{
			{Name: "resource_catalog", Scopes: []string{"catalog_fullpermission"}},
			{Name: "photo_stock_catalog", Scopes: []string{"photo_stock_fullpermission"}},
			{Name: domain.ScopeLocalAPI, Scopes: []string{domain.ScopeLocalAPI}},
		},
		ApiScopes: []domain.ApiScope{
			{Name: "catalog_fullpermission", Description: "Full access to the catalog API"},
			{Name: "photo_stock_fullpermission", Description: "Full access to the photo stock API"},
			{Name: domain.ScopeLocalAPI, Description: "Identity server local API"},
			{Name: domain.ScopeOfflineAccess, Description: "Refresh tokens"},
		},
		Clients: []domain.OAuth2Client{
			{
				ID:           "WebMvcClient",
				Name:         "Web MVC client",
				SecretHashes: []string{domain.HashSecret("secret")},
				GrantTypes:   []string{domain.GrantTypeClientCredentials},
				Scopes:       []string{"catalog_fullpermission", "photo_stock_fullpermission", domain.ScopeLocalAPI},
			},
			{
				ID:           "WebMvcClientForUser",
				Name:         "Web MVC client for users",
				SecretHashes: []string{domain.HashSecret("secret")},
				GrantTypes:   []string{domain.GrantTypePassword, domain.GrantTypeRefreshToken},
				Scopes:       []string{"catalog_fullpermission", domain.ScopeLocalAPI, domain.ScopeOfflineAccess},
			},
		},
	}
}

// LoadRegistry reads the registry from path, or returns DefaultRegistry when
// path is empty
func LoadRegistry(path string) (*domain.Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading client registry: %w", err)
	}
	return ParseRegistry(raw)
}

// ParseRegistry decodes a YAML registry document
func ParseRegistry(raw []byte) (*domain.Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("error parsing client registry: %w", err)
	}

	reg := &domain.Registry{
		ApiResources: file.ApiResources,
		ApiScopes:    file.ApiScopes,
	}

	declared := make(map[string]bool, len(file.ApiScopes))
	for _, s := range file.ApiScopes {
		declared[s.Name] = true
	}

	seen := make(map[string]bool, len(file.Clients))
	for _, c := range file.Clients {
		if c.ID == "" {
			return nil, fmt.Errorf("client registry: client without id")
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("client registry: duplicate client %q", c.ID)
		}
		seen[c.ID] = true

		for _, s := range c.Scopes {
			if !declared[s] {
				return nil, fmt.Errorf("client registry: client %q uses undeclared scope %q", c.ID, s)
			}
		}

		hashes := make([]string, 0, len(c.Secrets))
		for _, secret := range c.Secrets {
			hashes = append(hashes, domain.HashSecret(secret))
		}

		reg.Clients = append(reg.Clients, domain.OAuth2Client{
			ID:           c.ID,
			Name:         c.Name,
			SecretHashes: hashes,
			GrantTypes:   c.GrantTypes,
			Scopes:       c.Scopes,
		})
	}

	return reg, nil
}
