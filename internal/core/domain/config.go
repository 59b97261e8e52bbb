package domain

// ScopeConfig is the importer's view of one configured scope instance:
// its own name, where the local object store lives, and the endpoints of
// the remote scopes it may fetch from.
type ScopeConfig struct {
	// Scope is the name of the local scope. Ids owned by it never leave
	// the local store.
	Scope string

	// StoreDir is the root directory of the local object store.
	StoreDir string

	// Remotes maps remote scope names to their base endpoint URLs.
	Remotes map[string]string
}

// RemoteFor returns the endpoint for a scope name, and whether one is
// configured.
func (c *ScopeConfig) RemoteFor(scope string) (string, bool) {
	url, ok := c.Remotes[scope]
	return url, ok
}
