// Package config provides the depot.yaml configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "depot.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.ScopeConfig, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	return Load(filepath.Join(cwd, filename))
}

// depotfile represents the structure of the depot.yaml configuration file.
type depotfile struct {
	Scope   string            `yaml:"scope"`
	Store   string            `yaml:"store"`
	Remotes map[string]string `yaml:"remotes"`
}

// Load reads a configuration file from the given path.
func Load(path string) (*domain.ScopeConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file depotfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Scope == "" {
		return nil, zerr.With(zerr.New("config is missing the scope name"), "path", path)
	}
	if file.Store == "" {
		file.Store = filepath.Join(filepath.Dir(path), ".depot")
	}
	if _, clash := file.Remotes[file.Scope]; clash {
		err := zerr.New("the local scope cannot also be a remote")
		return nil, zerr.With(err, "scope", file.Scope)
	}

	return &domain.ScopeConfig{
		Scope:    file.Scope,
		StoreDir: file.Store,
		Remotes:  file.Remotes,
	}, nil
}
