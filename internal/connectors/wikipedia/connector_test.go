package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// newAPIFixture serves a one-page wiki: "Go (programming language)" at
// revision 42. Unknown titles resolve to nothing; searching anything
// suggests the known page.
func newAPIFixture(t *testing.T) *httptest.Server {
	t.Helper()

	const known = "Go (programming language)"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case q.Get("action") == "parse":
			if q.Get("page") != known {
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"parse":{"text":{"*":"<p>Go is a language.</p>"}}}`))

		case q.Get("list") == "search":
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"` + known + `"}]}}`))

		case q.Get("prop") == "extracts":
			if q.Get("titles") != known {
				_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"missing":""}}}}`))
				return
			}
			text := `Go is a language.\n\nIt has goroutines.`
			if q.Get("exintro") == "1" {
				text = "Go is a language."
			}
			_, _ = w.Write([]byte(`{"query":{"pages":{"7":{"title":"` + known + `","extract":"` + text + `"}}}}`))

		default: // resolve
			if q.Get("titles") != known {
				_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"missing":""}}}}`))
				return
			}
			_, _ = w.Write([]byte(`{"query":{"pages":{"7":{"title":"` + known + `","revisions":[{"revid":42}]}}}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestConnector(t *testing.T, srv *httptest.Server, cfg Config) *Connector {
	t.Helper()

	if cfg.Title == "" {
		cfg.Title = "Go (programming language)"
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(t.TempDir(), "downloads")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(t.TempDir(), "outputs")
	}

	conn, err := New(cfg)
	require.NoError(t, err)
	conn.client.apiURL = srv.URL
	conn.client.http = srv.Client()
	return conn
}

func TestNewRequiresTitle(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	srv := newAPIFixture(t)

	t.Run("resolves title and revision", func(t *testing.T) {
		conn := newTestConnector(t, srv, Config{})
		require.NoError(t, conn.Initialize(context.Background()))
		assert.Equal(t, int64(42), conn.page.RevisionID)
	})

	t.Run("unknown title fails init", func(t *testing.T) {
		conn := newTestConnector(t, srv, Config{Title: "No Such Page"})
		err := conn.Initialize(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConnectorInit))
	})

	t.Run("auto-suggest recovers misspelled title", func(t *testing.T) {
		conn := newTestConnector(t, srv, Config{Title: "golang langage", AutoSuggest: true})
		require.NoError(t, conn.Initialize(context.Background()))
		assert.Equal(t, "Go (programming language)", conn.page.Title)
	})
}

func TestListRenditions(t *testing.T) {
	srv := newAPIFixture(t)
	conn := newTestConnector(t, srv, Config{})
	require.NoError(t, conn.Initialize(context.Background()))

	docs, err := conn.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	stem := "Go (programming language)-42"
	assert.Equal(t, filepath.Join(conn.cfg.DownloadDir, stem+".txt"), docs[0].DownloadPath)
	assert.Equal(t, filepath.Join(conn.cfg.OutputDir, stem+"-txt.json"), docs[0].OutputPath)
	assert.Equal(t, filepath.Join(conn.cfg.DownloadDir, stem+".html"), docs[1].DownloadPath)
	assert.Equal(t, filepath.Join(conn.cfg.OutputDir, stem+"-html.json"), docs[1].OutputPath)
	assert.Equal(t, filepath.Join(conn.cfg.DownloadDir, stem+"-summary.txt"), docs[2].DownloadPath)
	assert.Equal(t, filepath.Join(conn.cfg.OutputDir, stem+"-summary.json"), docs[2].OutputPath)
}

func TestListBeforeInitialize(t *testing.T) {
	srv := newAPIFixture(t)
	conn := newTestConnector(t, srv, Config{})

	_, err := conn.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConnectorInit))
}

func TestFetchRenditions(t *testing.T) {
	srv := newAPIFixture(t)
	conn := newTestConnector(t, srv, Config{})
	require.NoError(t, conn.Initialize(context.Background()))

	docs, err := conn.List(context.Background())
	require.NoError(t, err)

	for _, doc := range docs {
		require.NoError(t, doc.Fetch(context.Background()))
	}

	text, err := os.ReadFile(docs[0].DownloadPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "goroutines")

	html, err := os.ReadFile(docs[1].DownloadPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<p>")

	summary, err := os.ReadFile(docs[2].DownloadPath)
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", string(summary))
	assert.NotContains(t, string(summary), "goroutines")
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "AC-DC", sanitizeTitle("AC/DC"))
	assert.Equal(t, "Plain Title", sanitizeTitle("Plain Title"))
}
