package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/backup"
	"github.com/lox/squares/internal/squares"
	"github.com/lox/squares/internal/store"
)

func populated(t *testing.T, kv store.KV) *Service {
	t.Helper()
	ctx := context.Background()
	svc, _ := newTestService(t, kv)
	players, err := svc.InitPlayersFromProps(ctx)
	require.NoError(t, err)
	for _, p := range players[:3] {
		_, err := svc.AutoFill(ctx, p.ID)
		require.NoError(t, err)
	}
	_, err = svc.Lock(ctx)
	require.NoError(t, err)
	return svc
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := populated(t, store.NewMemory())
	want, err := src.State(ctx)
	require.NoError(t, err)

	data, err := src.ExportBackup(ctx)
	require.NoError(t, err)

	dst, _ := newTestService(t, store.NewMemory())
	b, err := dst.ImportBackup(ctx, data)
	require.NoError(t, err)
	assert.NotNil(t, b.Props)
	assert.NotNil(t, b.Squares)

	got, err := dst.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := dst.ExportBackup(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestImportOverwritesExistingBoard(t *testing.T) {
	ctx := context.Background()
	data, err := populated(t, store.NewMemory()).ExportBackup(ctx)
	require.NoError(t, err)

	dst, _ := newTestService(t, store.NewMemory())
	_, err = dst.AddPlayer(ctx, "Someone Else")
	require.NoError(t, err)

	_, err = dst.ImportBackup(ctx, data)
	require.NoError(t, err)
	st, err := dst.State(ctx)
	require.NoError(t, err)
	_, found := st.PlayerByName("Someone Else")
	assert.False(t, found, "import replaces, never merges")
	assert.True(t, st.Locked)
}

func TestImportSquaresOnlyKeepsProps(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_, err := kv.Put(ctx, KeyProps, []byte(`{"eventName":"Mine","props":[],"friends":[]}`), store.MustNotExist)
	require.NoError(t, err)
	svc, _ := newTestService(t, kv)

	board := squares.NewState()
	data, err := backup.Encode(backup.Backup{Squares: board})
	require.NoError(t, err)
	_, err = svc.ImportBackup(ctx, data)
	require.NoError(t, err)

	p, err := svc.Props(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mine", p.EventName)
}

func TestRejectedImportWritesNothing(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := populated(t, kv)
	_, before, err := kv.Get(ctx, KeySquares)
	require.NoError(t, err)

	bad := []string{
		`not json`,
		`{}`,
		`{"props": {"eventName": "x", "props": [], "friends": []}, "squares": {"board": []}}`,
	}
	for _, doc := range bad {
		_, err := svc.ImportBackup(ctx, []byte(doc))
		assert.Error(t, err, doc)
	}

	_, after, err := kv.Get(ctx, KeySquares)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	_, _, err = kv.Get(ctx, KeyProps)
	assert.ErrorIs(t, err, store.ErrNotFound, "props half of a rejected document is not written")
}

func TestImportReplacesCorruptBoard(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_, err := kv.Put(ctx, KeySquares, []byte(`{"board": "broken"}`), store.Any)
	require.NoError(t, err)
	svc, _ := newTestService(t, kv)

	data, err := backup.Encode(backup.Backup{Squares: squares.NewState()})
	require.NoError(t, err)
	_, err = svc.ImportBackup(ctx, data)
	require.NoError(t, err)

	st, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, squares.NewState(), st)
}
