package server

import (
	"context"
	"html"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/render"
)

const testYAML = `title: Hub
divisions: [Entertainment, APS, VPS, BIS]
tools:
  - name: Radio Show Prepper
    division: [Entertainment]
    type: Artist Prep
    url: https://radio.example
  - name: Artist Calendar Helper
    division: [Entertainment]
  - name: Artist Training Planner
    division: [Entertainment, APS, VPS, BIS]
`

func newTestServer(t *testing.T, logger *zap.Logger) *Server {
	t.Helper()
	c, err := catalog.Parse([]byte(testYAML), "test.yaml", nil)
	require.NoError(t, err)
	return New(c, logger)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPageAllTools(t *testing.T) {
	rec := get(t, newTestServer(t, nil).Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `<span id="count">3</span>`)
	assert.Contains(t, body, `class="chip active" href="/?" aria-pressed="true">All</a>`)
}

func TestPageFilters(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		target  string
		count   string
		present []string
		absent  []string
	}{
		{"/?division=APS", "1", []string{"Artist Training Planner"}, []string{"Radio Show Prepper"}},
		{"/?division=aps", "1", []string{`aria-pressed="true">APS</a>`}, nil},
		{"/?q=calendar", "1", []string{"Artist Calendar Helper"}, []string{"Artist Training Planner"}},
		{"/?q=calendar&division=APS", "0", []string{render.EmptyMessage}, []string{`class="card"`}},
		{"/?division=Nowhere", "0", []string{render.EmptyMessage}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `<span id="count">`+tt.count+`</span>`)
			for _, s := range tt.present {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestRequestPage(t *testing.T) {
	rec := get(t, newTestServer(t, nil).Handler(), "/request?name=Setlist+Builder&description=pick+songs%0Aorder+them&users=DJs")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "TOOL REQUEST — Hub")
	assert.Contains(t, body, "Name: Setlist Builder")
	assert.Contains(t, body, "- pick songs\n- order them")
	assert.Contains(t, body, `value="Setlist Builder"`)
}

var (
	clearHrefRe  = regexp.MustCompile(`id="clearRequest" href="([^"]*)"`)
	requestOutRe = regexp.MustCompile(`(?s)<pre id="requestOut">(.*?)</pre>`)
)

func TestRequestClearEmptiesOutput(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	body := get(t, h, "/request?name=X&description=a&users=b").Body.String()
	require.Contains(t, requestOutRe.FindStringSubmatch(body)[1], "Name: X")

	m := clearHrefRe.FindStringSubmatch(body)
	require.NotNil(t, m)
	href := html.UnescapeString(m[1])
	assert.Equal(t, "/?", href)

	rec := get(t, h, href)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, `<pre id="requestOut"></pre>`)
	assert.Contains(t, body, `id="reqName" name="name" value=""`)
	assert.Contains(t, body, `<span id="count">3</span>`)
}

func TestRequestPageWithoutDraftIsEmpty(t *testing.T) {
	body := get(t, newTestServer(t, nil).Handler(), "/request").Body.String()
	assert.Contains(t, body, `<pre id="requestOut"></pre>`)

	body = get(t, newTestServer(t, nil).Handler(), "/request?name=&description=&users=").Body.String()
	assert.Contains(t, body, "Name: [name]", "a blank submit still generates")
}

func TestRequestKeepsFilter(t *testing.T) {
	body := get(t, newTestServer(t, nil).Handler(), "/request?q=planner&division=APS&name=X").Body.String()
	assert.Contains(t, body, `<span id="count">1</span>`)
	assert.Contains(t, body, `<input type="hidden" name="q" value="planner">`)
	assert.Contains(t, body, `<input type="hidden" name="division" value="APS">`)

	m := clearHrefRe.FindStringSubmatch(body)
	require.NotNil(t, m)
	assert.Equal(t, "/?division=APS&q=planner", html.UnescapeString(m[1]))
}

func TestRequestText(t *testing.T) {
	rec := get(t, newTestServer(t, nil).Handler(), "/request.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "TOOL REQUEST — Hub\n"))
	assert.Contains(t, rec.Body.String(), "Name: [name]")
}

func TestCatalogDocument(t *testing.T) {
	rec := get(t, newTestServer(t, nil).Handler(), "/catalog.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testYAML, rec.Body.String())

	mem := New(catalog.New("Hub", nil, nil), nil)
	assert.Equal(t, http.StatusNotFound, get(t, mem.Handler(), "/catalog.yaml").Code)
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t, nil).Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	get(t, newTestServer(t, zap.New(core)).Handler(), "/?division=VPS")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/", fields["path"])
	assert.Equal(t, "division=VPS", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestListenAndServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(t, nil).ListenAndServe(ctx, addr) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/healthz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeBadAddr(t *testing.T) {
	err := newTestServer(t, nil).ListenAndServe(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
