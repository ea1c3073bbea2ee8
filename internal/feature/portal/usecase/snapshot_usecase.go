package usecase

import (
	"context"
	"log/slog"

	"data_explorer/internal/platform/outfile"
)

// DefaultPortalURL is the news portal captured by default.
const DefaultPortalURL = "https://www.cnbc.com/world/?region=world"

// PageSource は生のHTMLを取得するインターフェイスです。
// HTTPフェッチャーとヘッドレスブラウザの両方が実装します。
type PageSource interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// SnapshotRequest は取得対象URLと保存先パスです。
type SnapshotRequest struct {
	URL    string
	Output string
}

// SnapshotUsecase はポータルのHTMLをローカルファイルに保存するユースケースです。
type SnapshotUsecase struct {
	source PageSource
}

// NewSnapshotUsecase は新しい SnapshotUsecase を作成します。
func NewSnapshotUsecase(source PageSource) *SnapshotUsecase {
	return &SnapshotUsecase{source: source}
}

// Run はページを取得してOutputに書き出します。親ディレクトリは作成されます。
func (su *SnapshotUsecase) Run(ctx context.Context, req SnapshotRequest) error {
	slog.Info("fetching portal", "url", req.URL)
	html, err := su.source.Fetch(ctx, req.URL)
	if err != nil {
		return err
	}
	return outfile.WriteFile(req.Output, html)
}
