package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/cmd/depot/commands"
	"go.trai.ch/depot/internal/adapters/cas"
	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/importer"
	"go.uber.org/mock/gomock"
)

func newCLI(t *testing.T, remote *mocks.MockRemoteFetcher) (*commands.CLI, *cas.Store, *bytes.Buffer) {
	t.Helper()
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	cfg := &domain.ScopeConfig{Scope: "scopeA", Remotes: map[string]string{"scopeB": "http://scope-b.example"}}
	im := importer.New(cfg.Scope, store, remote, telemetry.NewNoOpTracer(), nil)
	cli := commands.New(app.New(cfg, im, store, nil))

	var out bytes.Buffer
	cli.SetOutput(&out)
	return cli, store, &out
}

func seedFoo(t *testing.T, store *cas.Store) {
	t.Helper()
	record, err := domain.NewTransferItem(domain.KindComponent, &domain.ComponentRecord{
		Scope:    domain.NewInternedString("scopeA"),
		Name:     domain.NewInternedString("foo"),
		Versions: []domain.VersionTag{{Tag: "1.0.0", Hash: "h1"}},
		Head:     "1.0.0",
	})
	require.NoError(t, err)

	payload, err := domain.EncodeObject(&domain.VersionContent{Hash: "h1"})
	require.NoError(t, err)
	version := domain.TransferItem{Hash: "h1", Kind: domain.KindVersion, Payload: payload}

	_, err = store.WriteBatch(context.Background(), domain.TransferBatch{Items: []domain.TransferItem{record, version}}, true, domain.NewIDSet())
	require.NoError(t, err)
}

func TestImport_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, store, out := newCLI(t, remote)

	seedFoo(t, store)

	cli.SetArgs([]string{"import", "scopeA/foo@1.0.0"})
	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "scopeA/foo@1.0.0")
}

func TestImport_NoRefs_ShowsHelp(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, _, _ := newCLI(t, remote)

	cli.SetArgs([]string{"import"})
	err := cli.Execute(context.Background())
	assert.NoError(t, err)
}

func TestImport_UnknownLocal_Fails(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, _, _ := newCLI(t, remote)

	cli.SetArgs([]string{"import", "scopeA/missing@1.0.0"})
	err := cli.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
}

func TestLaneSyncAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, _, out := newCLI(t, remote)

	lane := domain.Lane{Scope: "scopeB", Name: "stable"}
	item, err := domain.NewTransferItem(domain.KindLane, lane)
	require.NoError(t, err)
	remote.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferBatch{Items: []domain.TransferItem{item}}, nil)

	cli.SetArgs([]string{"lane", "sync", "scopeB/stable"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "scopeB/stable")

	out.Reset()
	cli.SetArgs([]string{"lane", "list"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "scopeB/stable")
}

func TestShow_LocalOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, store, out := newCLI(t, remote)

	seedFoo(t, store)

	cli.SetArgs([]string{"show", "--local", "scopeA/foo"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "scopeA/foo")
	assert.Contains(t, out.String(), "1.0.0")
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, _, _ := newCLI(t, remote)

	cli.SetArgs([]string{"--help"})
	err := cli.Execute(context.Background())
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteFetcher(ctrl)
	cli, _, out := newCLI(t, remote)

	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "depot version")
}
