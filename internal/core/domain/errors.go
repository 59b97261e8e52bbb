package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidID is returned when an identifier string cannot be parsed.
	ErrInvalidID = zerr.New("invalid component id")

	// ErrComponentNotFound is returned when an identifier resolves to no
	// component record anywhere reachable.
	ErrComponentNotFound = zerr.New("component not found")

	// ErrDependencyNotFound is returned when a dependency identifier could
	// not be resolved. It wraps the lower-level cause unless that cause is
	// ErrRemoteScopeNotFound or ErrPermissionDenied, which pass through.
	ErrDependencyNotFound = zerr.New("dependency not found")

	// ErrRemoteScopeNotFound is surfaced verbatim from the remote fetch
	// collaborator when a scope endpoint does not exist. Never retried.
	ErrRemoteScopeNotFound = zerr.New("remote scope not found")

	// ErrPermissionDenied is surfaced verbatim from the remote fetch
	// collaborator. Never retried.
	ErrPermissionDenied = zerr.New("permission denied by remote scope")

	// ErrInconsistentStore is returned when a locally-owned component's
	// version content is missing despite its record existing. Indicates
	// local store corruption, fatal.
	ErrInconsistentStore = zerr.New("local store is inconsistent")

	// ErrNoProgress is returned when a remote round-trip fails to shrink
	// the residual id set, which would otherwise loop forever.
	ErrNoProgress = zerr.New("remote fetch made no progress")

	// ErrDependencyCycle is returned when a flattened dependency list
	// references the component it belongs to. Flattened closures are
	// precomputed at publish time and must be acyclic.
	ErrDependencyCycle = zerr.New("cycle in flattened dependency list")

	// ErrVersionNotFound is returned when a component record has no entry
	// for the requested version tag.
	ErrVersionNotFound = zerr.New("version not found in component record")

	// ErrLaneNotFound is returned when a requested lane is absent from a
	// transfer batch.
	ErrLaneNotFound = zerr.New("lane not found")

	// ErrUnknownObjectKind is returned when a transfer item carries a kind
	// the store cannot deserialize.
	ErrUnknownObjectKind = zerr.New("unknown object kind in transfer batch")

	// ErrExternalComponent is returned by local-only loads when the
	// requested id is owned by another scope.
	ErrExternalComponent = zerr.New("component is external to this scope")
)
