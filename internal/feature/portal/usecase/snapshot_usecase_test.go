package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data_explorer/internal/feature/portal/usecase"
	"data_explorer/internal/shared/apperr"
)

// mockPageSource はPageSourceインターフェースのモック実装です。
type mockPageSource struct {
	FetchFunc func(ctx context.Context, rawURL string) ([]byte, error)
	Calls     int
}

func (m *mockPageSource) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	m.Calls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, rawURL)
	}
	return nil, errors.New("FetchFunc is not implemented")
}

// TestSnapshotUsecase_Run は取得したHTMLが親ディレクトリごと保存されることを検証します。
func TestSnapshotUsecase_Run(t *testing.T) {
	t.Parallel()

	src := &mockPageSource{FetchFunc: func(_ context.Context, rawURL string) ([]byte, error) {
		assert.Equal(t, usecase.DefaultPortalURL, rawURL)
		return []byte("<html>portal</html>"), nil
	}}
	out := filepath.Join(t.TempDir(), "data", "raw_data", "web_data.html")

	err := usecase.NewSnapshotUsecase(src).Run(context.Background(), usecase.SnapshotRequest{URL: usecase.DefaultPortalURL, Output: out})
	require.NoError(t, err)

	assert.Equal(t, "<html>portal</html>", readFile(t, out))
	assert.Equal(t, 1, src.Calls)
}

// TestSnapshotUsecase_Run_Error は取得エラー時にファイルを作成しないことを検証します。
func TestSnapshotUsecase_Run_Error(t *testing.T) {
	t.Parallel()

	src := &mockPageSource{FetchFunc: func(context.Context, string) ([]byte, error) {
		return nil, apperr.ErrMissingDependency
	}}
	out := filepath.Join(t.TempDir(), "web_data.html")

	err := usecase.NewSnapshotUsecase(src).Run(context.Background(), usecase.SnapshotRequest{URL: "u", Output: out})
	require.ErrorIs(t, err, apperr.ErrMissingDependency)
	assert.NoFileExists(t, out)
}
