package auditor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/amosWeiskopf/onpage/pkg/fetcher"
	"github.com/amosWeiskopf/onpage/pkg/storage"
)

const page = `<html><head>
<title>Widgets</title>
<meta name="description" content="All the widgets">
<meta property="og:type" content="website">
</head><body><h1>Widgets</h1><h2>Blue</h2></body></html>`

type stubFetcher struct {
	bodies map[string]string
	calls  []string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) (string, error) {
	s.calls = append(s.calls, rawURL)
	body, ok := s.bodies[rawURL]
	if !ok {
		return "", errors.New("connection refused")
	}
	return body, nil
}

func newTestAuditor(t *testing.T, f fetcher.PageFetcher) (*Auditor, string, string) {
	t.Helper()
	root := t.TempDir()
	indexDir := filepath.Join(root, "index")
	reportDir := filepath.Join(root, "reports")
	logger := zaptest.NewLogger(t)
	return New(f, storage.New(indexDir, reportDir, logger), logger), indexDir, reportDir
}

func TestAuditEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer server.Close()

	a, indexDir, reportDir := newTestAuditor(t, fetcher.New(fetcher.Options{}, nil))
	res, err := a.Audit(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Empty(t, res.Record.Error)
	require.NotNil(t, res.Record.Title)
	assert.Equal(t, "Widgets", *res.Record.Title)
	assert.Contains(t, res.Report, "Descripción Meta:  All the widgets")
	assert.Contains(t, res.Report, "  og:type: website")

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	stem := strings.ReplaceAll(u.Hostname(), ".", "_")

	assert.Equal(t, filepath.Join(reportDir, stem+".txt"), res.Saved.ReportPath)
	assert.Equal(t, filepath.Join(indexDir, stem+".html"), res.Saved.HTMLPath)

	saved, err := os.ReadFile(res.Saved.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, res.Report, string(saved))

	html, err := os.ReadFile(res.Saved.HTMLPath)
	require.NoError(t, err)
	assert.Equal(t, page, string(html))
}

func TestAuditFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>not found</html>"))
	}))
	defer server.Close()

	a, indexDir, reportDir := newTestAuditor(t, fetcher.New(fetcher.Options{}, nil))
	res, err := a.Audit(context.Background(), server.URL+"/missing")
	require.NoError(t, err)

	assert.True(t, res.Record.Failed())
	assert.True(t, strings.HasPrefix(res.Record.Error, "Error al descargar la página o tiempo de espera agotado: "))
	assert.Contains(t, res.Report, "❌ ERROR: ")
	assert.NotContains(t, res.Report, "TITLE:")
	assert.Equal(t, storage.Saved{}, res.Saved)

	for _, dir := range []string{indexDir, reportDir} {
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), dir)
	}
}

func TestAuditInvalidURLMessage(t *testing.T) {
	a, _, _ := newTestAuditor(t, fetcher.New(fetcher.Options{}, nil))
	res, err := a.Audit(context.Background(), "https://")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Record.Error, "Error de formato de URL"))
}

func TestRunSequentialWithSummary(t *testing.T) {
	stub := &stubFetcher{bodies: map[string]string{
		"https://a.example": page,
		"https://c.example": "<title>C</title>",
	}}
	a, _, reportDir := newTestAuditor(t, stub)

	var emitted []string
	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	sum, err := a.Run(context.Background(), urls, func(r Result) {
		emitted = append(emitted, r.Record.URL)
	})
	require.NoError(t, err)

	assert.Equal(t, urls, stub.calls)
	assert.Equal(t, urls, emitted)
	assert.Equal(t, Summary{Audited: 3, Failed: 1, Files: 4}, sum)

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a_example.txt", "c_example.txt"}, names)
}

func TestRunStopsOnCancel(t *testing.T) {
	stub := &stubFetcher{bodies: map[string]string{}}
	a, _, _ := newTestAuditor(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := a.Run(ctx, []string{"https://a.example"}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, sum.Audited)
	assert.Empty(t, stub.calls)
}
