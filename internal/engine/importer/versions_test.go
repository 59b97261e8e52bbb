package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/importer"
	"go.uber.org/mock/gomock"
)

func closureIDs(closures []domain.Closure) []string {
	out := make([]string, 0, len(closures))
	for _, c := range closures {
		out = append(out, c.Resolved.ID.String())
	}
	return out
}

func TestResolveAllVersions_Shallow(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	seed(t, store,
		componentItem(t, record(selfScope, "foo", "1.0.0", "2.0.0")),
		versionItem(t, content("foo", "1.0.0")),
		versionItem(t, content("foo", "2.0.0")),
	)

	closures, err := im.ResolveAllVersions(context.Background(),
		domain.NewIDSet(domain.MustParseComponentID("scopeA/foo@2.0.0")),
		importer.AllVersionsOptions{UseCache: true})
	require.NoError(t, err)

	// Only the requested version is expanded into a closure; the history
	// is resolved shallowly.
	assert.Equal(t, []string{"scopeA/foo@2.0.0"}, closureIDs(closures))
}

func TestResolveAllVersions_Deep(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	// foo@2.0.0 depends on bar@1.0.0; bar has a second version that only
	// the deep mode pulls in.
	seed(t, store,
		componentItem(t, record("scopeB", "foo", "1.0.0", "2.0.0")),
		versionItem(t, content("foo", "1.0.0")),
		versionItem(t, content("foo", "2.0.0", "scopeB/bar@1.0.0")),
		componentItem(t, record("scopeB", "bar", "1.0.0", "2.0.0")),
		versionItem(t, content("bar", "1.0.0")),
		versionItem(t, content("bar", "2.0.0")),
	)

	closures, err := im.ResolveAllVersions(context.Background(),
		domain.NewIDSet(domain.MustParseComponentID("scopeB/foo@2.0.0")),
		importer.AllVersionsOptions{UseCache: true, Deep: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"scopeB/foo@2.0.0",
		"scopeB/foo@1.0.0",
		"scopeB/bar@1.0.0",
		"scopeB/bar@2.0.0",
	}, closureIDs(closures))
}

func TestResolveAllVersions_DeepSkipsRequestedComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	im, store := newImporter(t, remote)

	// foo and bar depend on each other's component at different versions.
	// Both are part of the request, so the recursion terminates without
	// re-entering either component.
	seed(t, store,
		componentItem(t, record("scopeB", "foo", "1.0.0")),
		versionItem(t, content("foo", "1.0.0", "scopeB/bar@1.0.0")),
		componentItem(t, record("scopeB", "bar", "1.0.0")),
		versionItem(t, content("bar", "1.0.0", "scopeB/foo@1.0.0")),
	)

	closures, err := im.ResolveAllVersions(context.Background(),
		domain.NewIDSet(
			domain.MustParseComponentID("scopeB/foo@1.0.0"),
			domain.MustParseComponentID("scopeB/bar@1.0.0"),
		),
		importer.AllVersionsOptions{UseCache: true, Deep: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"scopeB/foo@1.0.0", "scopeB/bar@1.0.0"}, closureIDs(closures))
}
