package config

import (
	"os"
	"path/filepath"
	"strings"
)

// SecretProvider resolves named secrets. It is consulted before the
// environment for every configuration key.
type SecretProvider interface {
	GetSecret(name string) (string, bool)
}

// fileSecretProvider reads one secret per file from a directory, the
// convention used by mounted secret volumes. A missing or empty file
// means the secret is absent.
type fileSecretProvider struct {
	dir string
}

func NewFileSecretProvider(dir string) SecretProvider {
	return &fileSecretProvider{dir: dir}
}

func (p *fileSecretProvider) GetSecret(name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}
