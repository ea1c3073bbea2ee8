package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data_explorer/internal/feature/htmltext/usecase"
	"data_explorer/internal/platform/extract"
	infrahttp "data_explorer/internal/platform/http"
	"data_explorer/internal/shared/apperr"
)

// mockFetcher はFetcherインターフェースのモック実装です。
type mockFetcher struct {
	FetchFunc func(ctx context.Context, rawURL string) ([]byte, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, rawURL)
	}
	return nil, errors.New("FetchFunc is not implemented")
}

func serve(page string) *mockFetcher {
	return &mockFetcher{FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
		return []byte(page), nil
	}}
}

func run(t *testing.T, f usecase.Fetcher) (string, error) {
	t.Helper()
	outDir := t.TempDir()
	var out bytes.Buffer
	uc := usecase.NewHTMLTextUsecase(f, extract.NewHTMLExtractor(extract.DefaultMinParagraphs), &out)
	return outDir, uc.Run(context.Background(), usecase.Request{URL: "https://example.com/a", OutDir: outDir})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// TestHTMLTextUsecase_Run は抜粋と文サンプルの出力を検証します。
func TestHTMLTextUsecase_Run(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<p>The market rose today.  Investors cheered!</p>
<p>Was it
 enough? Nobody knows.</p>
<p>Final paragraph here</p>
</body></html>`

	outDir, err := run(t, serve(page))
	require.NoError(t, err)

	assert.Equal(t,
		"The market rose today. Investors cheered! Was it enough? Nobody knows. Final paragraph here",
		readFile(t, filepath.Join(outDir, usecase.ExcerptFile)))
	assert.Equal(t,
		"sentence\nThe market rose today\nInvestors cheered\nWas it enough\nNobody knows\nFinal paragraph here\n",
		readFile(t, filepath.Join(outDir, usecase.SentencesFile)))
}

// TestHTMLTextUsecase_Run_ExcerptTruncation は10,000文字の入力から4,000文字の抜粋を得ることを検証します。
func TestHTMLTextUsecase_Run_ExcerptTruncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("abcdefghi ", 1000)
	require.Equal(t, 10000, len(long))
	page := "<p>" + long + "</p><p>x</p><p>y</p>"

	outDir, err := run(t, serve(page))
	require.NoError(t, err)

	excerpt := readFile(t, filepath.Join(outDir, usecase.ExcerptFile))
	assert.Equal(t, 4000, utf8.RuneCountInString(excerpt))
}

// TestHTMLTextUsecase_Run_SentenceCap は文サンプルが80行に制限されることを検証します。
func TestHTMLTextUsecase_Run_SentenceCap(t *testing.T) {
	t.Parallel()

	page := "<p>" + strings.Repeat("Short one. ", 200) + "</p><p>a</p><p>b</p>"

	outDir, err := run(t, serve(page))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(readFile(t, filepath.Join(outDir, usecase.SentencesFile))), "\n")
	assert.Len(t, lines, 81)
}

// TestHTMLTextUsecase_Run_EmptyPage はテキストの無いページでもヘッダのみのCSVを出力することを検証します。
func TestHTMLTextUsecase_Run_EmptyPage(t *testing.T) {
	t.Parallel()

	outDir, err := run(t, serve(`<html><head><script>1</script></head><body></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, "", readFile(t, filepath.Join(outDir, usecase.ExcerptFile)))
	assert.Equal(t, "sentence\n", readFile(t, filepath.Join(outDir, usecase.SentencesFile)))
}

// TestHTMLTextUsecase_Run_FetchError は取得エラーが伝播しファイルが作られないことを検証します。
func TestHTMLTextUsecase_Run_FetchError(t *testing.T) {
	t.Parallel()

	f := &mockFetcher{FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
		return nil, apperr.ErrNetwork
	}}
	outDir, err := run(t, f)

	require.ErrorIs(t, err, apperr.ErrNetwork)
	_, statErr := os.Stat(filepath.Join(outDir, usecase.ExcerptFile))
	assert.True(t, os.IsNotExist(statErr))
}

// TestHTMLTextUsecase_Run_Latin1Page はLatin-1で配信されたページからUTF-8の出力が得られることを検証します。
func TestHTMLTextUsecase_Run_Latin1Page(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<html><body><p>Caf\xe9 one.</p><p>R\xe9sum\xe9 two.</p><p>Three.</p></body></html>"))
	}))
	defer server.Close()

	outDir := t.TempDir()
	fetcher := infrahttp.NewFetcher(server.Client(), infrahttp.LoadFetcherConfig(time.Second), nil)
	uc := usecase.NewHTMLTextUsecase(fetcher, extract.NewHTMLExtractor(extract.DefaultMinParagraphs), &bytes.Buffer{})

	require.NoError(t, uc.Run(context.Background(), usecase.Request{URL: server.URL, OutDir: outDir}))

	excerpt := readFile(t, filepath.Join(outDir, usecase.ExcerptFile))
	assert.True(t, utf8.ValidString(excerpt))
	assert.Equal(t, "Café one. Résumé two. Three.", excerpt)

	sentences := readFile(t, filepath.Join(outDir, usecase.SentencesFile))
	assert.True(t, utf8.ValidString(sentences))
	assert.Equal(t, "sentence\nCafé one\nRésumé two\nThree.\n", sentences)
}
