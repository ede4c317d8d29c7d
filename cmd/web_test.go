package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shencore/shen/pkg/api"
	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
)

// fakeSearch answers two items per page and signals a next page until page
// 3. "quota" fails upstream and "down" fails in transport.
type fakeSearch struct {
	mu    sync.Mutex
	calls []search.Request
}

func (f *fakeSearch) Execute(ctx context.Context, req search.Request) (*search.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	switch req.Term {
	case "quota":
		return nil, &search.APIError{Code: 403, Message: "quota exceeded"}
	case "down":
		return nil, &search.TransportError{Op: "making request", Err: errors.New("connection refused")}
	}

	prefix := req.Term + "-" + string(req.Type) + "-" + strconv.Itoa(req.Page)
	resp := &search.Response{
		Items: []search.Item{
			{Title: prefix + "a", Link: "https://example.com/" + prefix + "a"},
			{Title: prefix + "b", Link: "https://example.com/" + prefix + "b"},
		},
		SearchInformation: &search.SearchInformation{TotalResults: "1000", FormattedTotalResults: "1,000", FormattedSearchTime: "0.21"},
	}
	if req.Page < 3 {
		resp.Queries = &search.Queries{NextPage: []search.QueryInfo{{StartIndex: search.StartIndex(req.Page + 1)}}}
	}
	return resp, nil
}

func (f *fakeSearch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig(t *testing.T, locale string) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	cfg.Locale = locale
	cfg.Web.SessionTTL = config.Duration{Duration: time.Hour}
	return cfg
}

func setupTestWebServer(t *testing.T, locale string) (*httptest.Server, *http.Client, *fakeSearch) {
	t.Helper()

	exec := &fakeSearch{}
	ws := newWebServer(testConfig(t, locale), exec, nil)
	t.Cleanup(ws.Close)

	ts := httptest.NewServer(ws.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ts, &http.Client{Jar: jar}, exec
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}

func get(t *testing.T, client *http.Client, u string) string {
	t.Helper()
	resp, err := client.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", u, resp.StatusCode)
	}
	return readBody(t, resp)
}

func post(t *testing.T, client *http.Client, u string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d after redirect", u, resp.StatusCode)
	}
	if resp.Request.URL.Path != "/" {
		t.Errorf("POST %s should redirect to /, ended at %s", u, resp.Request.URL.Path)
	}
	return readBody(t, resp)
}

func TestHomePageEmptySession(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "fa")

	body := get(t, client, ts.URL+"/")

	for _, want := range []string{`dir="rtl"`, `lang="fa"`, "همه", "تصاویر", "ویدیوها", "Exclusive ☬SHΞN™ made", `/static/app.js`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "load-more") {
		t.Error("load more must not be shown before a search")
	}
	if exec.count() != 0 {
		t.Errorf("no search expected, got %d calls", exec.count())
	}
}

func TestSessionCookieIsStable(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	get(t, client, ts.URL+"/")
	u, _ := url.Parse(ts.URL)
	cookies := client.Jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected one session cookie, got %v", cookies)
	}
	first := cookies[0].Value

	body := get(t, client, ts.URL+"/")
	if got := client.Jar.Cookies(u)[0].Value; got != first {
		t.Errorf("session changed from %s to %s", first, got)
	}
	if !strings.Contains(body, `data-session="`+first+`"`) {
		t.Error("page should expose the session id to the script")
	}
}

func TestSearchFlow(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	body := post(t, client, ts.URL+"/search", url.Values{"q": {"  cats  "}})
	if !strings.Contains(body, "cats-all-1a") || !strings.Contains(body, "cats-all-1b") {
		t.Fatalf("first page missing from page:\n%s", body)
	}
	if !strings.Contains(body, "Found: 1,000 (0.21 seconds)") {
		t.Error("results summary missing")
	}
	if !strings.Contains(body, `action="/more"`) {
		t.Error("load more should be offered when a next page exists")
	}
	if !strings.Contains(body, `value="  cats  "`) {
		t.Error("search box should keep the typed text")
	}

	body = post(t, client, ts.URL+"/more", nil)
	for _, want := range []string{"cats-all-1a", "cats-all-2a", "cats-all-2b"} {
		if !strings.Contains(body, want) {
			t.Errorf("after load more, page missing %q", want)
		}
	}
	if strings.Index(body, "cats-all-1a") > strings.Index(body, "cats-all-2a") {
		t.Error("appended page must come after the first")
	}

	body = post(t, client, ts.URL+"/more", nil)
	if !strings.Contains(body, "cats-all-3a") {
		t.Error("third page missing")
	}
	if strings.Contains(body, `action="/more"`) {
		t.Error("load more must disappear on the last page")
	}

	if exec.count() != 3 {
		t.Errorf("expected 3 calls, got %d", exec.count())
	}
}

func TestTypeChangeRerunsSearch(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	post(t, client, ts.URL+"/search", url.Values{"q": {"cats"}})
	post(t, client, ts.URL+"/more", nil)

	body := post(t, client, ts.URL+"/type", url.Values{"type": {"image"}})
	if !strings.Contains(body, "results-image") {
		t.Error("image layout expected")
	}
	if strings.Contains(body, "cats-all-") {
		t.Error("type change must replace the previous results")
	}
	if !strings.Contains(body, "cats-image-1a") {
		t.Error("image results missing")
	}

	last := exec.calls[len(exec.calls)-1]
	if last.Type != search.TypeImage || last.Page != 1 || last.Term != "cats" {
		t.Errorf("unexpected rerun request %+v", last)
	}
}

func TestTypeChangeBeforeSearchDoesNotSearch(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	body := post(t, client, ts.URL+"/type", url.Values{"type": {"video"}})
	if exec.count() != 0 {
		t.Errorf("no search expected, got %d", exec.count())
	}
	if !strings.Contains(body, `value="video" class="active"`) {
		t.Error("video filter should be active")
	}
}

func TestTypeChangeUsesPostedQuery(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	body := post(t, client, ts.URL+"/search", url.Values{"q": {"cats"}})
	if !strings.Contains(body, `formaction="/type"`) {
		t.Error("filter buttons should submit the search box with the type")
	}
	body = post(t, client, ts.URL+"/type", url.Values{"type": {"image"}, "q": {"dogs"}})

	if !strings.Contains(body, "dogs-image-1a") || strings.Contains(body, "cats-") {
		t.Errorf("type change should search the edited text:\n%s", body)
	}
	if exec.count() != 2 {
		t.Errorf("expected 2 calls, got %d", exec.count())
	}
}

func TestSearchSurvivesClientDisconnect(t *testing.T) {
	inner := &fakeSearch{}
	exec := search.ExecutorFunc(func(ctx context.Context, r search.Request) (*search.Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return inner.Execute(ctx, r)
	})
	ws := newWebServer(testConfig(t, "en"), exec, nil)
	t.Cleanup(ws.Close)
	h := ws.Handler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("q=cats"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/results", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "cats-all-1a") {
		t.Errorf("search should finish after the client left:\n%s", body)
	}
	if strings.Contains(body, "data-kind") {
		t.Error("disconnect must not be shown as a failure")
	}
}

func TestSearchWithTypeFromForm(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	post(t, client, ts.URL+"/search", url.Values{"q": {"cats"}, "type": {"video"}})
	post(t, client, ts.URL+"/search", url.Values{"q": {"dogs"}, "type": {"image"}})

	if exec.count() != 2 {
		t.Fatalf("expected exactly one call per submit, got %d", exec.count())
	}
	if exec.calls[0].Type != search.TypeVideo || exec.calls[1].Type != search.TypeImage || exec.calls[1].Term != "dogs" {
		t.Errorf("unexpected calls %+v", exec.calls)
	}
}

func TestEmptyQueryIsIgnored(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	body := post(t, client, ts.URL+"/search", url.Values{"q": {"   "}})
	if exec.count() != 0 {
		t.Errorf("whitespace query must not search, got %d calls", exec.count())
	}
	if strings.Contains(body, "error-banner") || strings.Contains(body, "No results found.") {
		t.Error("ignored query must not show an error or empty state")
	}
}

func TestUpstreamErrorShownAsText(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	body := post(t, client, ts.URL+"/search", url.Values{"q": {"quota"}})
	if !strings.Contains(body, `data-kind="upstream">quota exceeded</div>`) {
		t.Errorf("upstream message missing:\n%s", body)
	}
}

func TestTransportErrorLocalized(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "fa")

	body := post(t, client, ts.URL+"/search", url.Values{"q": {"down"}})
	if !strings.Contains(body, "خطایی در برقراری ارتباط رخ داد") {
		t.Error("transport failures should use the localized message")
	}
	if strings.Contains(body, "connection refused") {
		t.Error("transport details must not reach the page")
	}
}

func TestHomeQueryParameter(t *testing.T) {
	ts, client, exec := setupTestWebServer(t, "en")

	body := get(t, client, ts.URL+"/?q=birds&type=image")
	if !strings.Contains(body, "birds-image-1a") {
		t.Error("query parameter should run the search")
	}
	if exec.count() != 1 {
		t.Errorf("expected one call, got %d", exec.count())
	}

	resp, err := client.Get(ts.URL + "/?q=birds&type=audio")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown type: status %d", resp.StatusCode)
	}
}

func TestResultsFragment(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	post(t, client, ts.URL+"/search", url.Values{"q": {"cats"}})
	frag := get(t, client, ts.URL+"/results")

	if strings.Contains(frag, "<html") {
		t.Error("fragment must not contain the page shell")
	}
	if !strings.Contains(frag, "cats-all-1a") {
		t.Error("fragment should contain the results")
	}
}

func TestInvalidTypeForm(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	resp, err := client.PostForm(ts.URL+"/type", url.Values{"type": {"audio"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status %d, want 400", resp.StatusCode)
	}
}

func TestUISessionVisibleThroughAPI(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	post(t, client, ts.URL+"/search", url.Values{"q": {"cats"}})
	u, _ := url.Parse(ts.URL)
	sid := client.Jar.Cookies(u)[0].Value

	resp, err := http.Get(ts.URL + "/api/sessions/" + sid)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var view session.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	if view.Term != "cats" || len(view.Items) != 2 || !view.HasNextPage {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestStaticAssets(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	tests := map[string]string{
		"/static/app.css":               "text/css",
		"/static/app.js":                "application/javascript",
		"/static/video-placeholder.svg": "image/svg+xml",
	}
	for path, ctype := range tests {
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), ctype) {
			t.Errorf("%s: content type %q", path, resp.Header.Get("Content-Type"))
		}
	}

	resp, err := client.Get(ts.URL + "/static/missing.css")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing asset: status %d", resp.StatusCode)
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	ts, client, _ := setupTestWebServer(t, "en")

	resp, err := client.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d, want 404", resp.StatusCode)
	}
}

type credentials struct {
	mu      sync.Mutex
	key, cx string
}

func (c *credentials) SetCredentials(key, cx string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.cx = key, cx
}

func TestConfigReload(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvCX, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	write := func(s string) {
		if err := os.WriteFile(path, []byte(s), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("[google]\napi_key = \"old\"\ncx = \"engine\"\n")

	target := &credentials{}
	r, err := newConfigReloader(path, target)
	if err != nil {
		t.Fatalf("creating reloader: %v", err)
	}
	defer r.Close()

	write("[google]\napi_key = \"new\"\ncx = \"engine2\"\n")
	if err := r.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if target.key != "new" || target.cx != "engine2" {
		t.Errorf("credentials not swapped: %+v", target)
	}

	write("[google]\napi_key = \"\"\n")
	if err := r.reload(); err == nil {
		t.Error("a config without credentials must be rejected")
	}
	if target.key != "new" {
		t.Error("rejected reload must keep the previous credentials")
	}
}

func TestConfigReloadWatchesFile(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvCX, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[google]\napi_key = \"a\"\ncx = \"b\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	target := &credentials{}
	r, err := newConfigReloader(path, target)
	if err != nil {
		t.Fatalf("creating reloader: %v", err)
	}
	defer r.Close()
	r.settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	if err := os.WriteFile(path, []byte("[google]\napi_key = \"watched\"\ncx = \"b\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		target.mu.Lock()
		key := target.key
		target.mu.Unlock()
		if key == "watched" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("file change was not picked up")
}

func TestSessionSearchAppendsPages(t *testing.T) {
	exec := &fakeSearch{}
	res := sessionSearch(context.Background(), exec, "en", searchOptions{query: "cats", typ: search.TypeVideo, page: 1, more: 5})

	if len(res.Items) != 6 || res.Page != 3 || res.HasNextPage {
		t.Errorf("expected 3 pages of 2 items, got %d items page %d next=%v", len(res.Items), res.Page, res.HasNextPage)
	}
	if exec.count() != 3 {
		t.Errorf("load more must stop at the last page, got %d calls", exec.count())
	}
	if res.Items[0].Title != "cats-video-1a" || res.Items[5].Title != "cats-video-3b" {
		t.Errorf("unexpected order %q .. %q", res.Items[0].Title, res.Items[5].Title)
	}
}

func TestPagedSearchStartsAtPage(t *testing.T) {
	exec := &fakeSearch{}
	res := pagedSearch(context.Background(), exec, "en", searchOptions{query: "cats", typ: search.TypeImage, page: 2, more: 1})

	if len(res.Items) != 4 || res.Page != 3 {
		t.Errorf("got %d items, page %d", len(res.Items), res.Page)
	}
	if exec.calls[0].Page != 2 {
		t.Errorf("first call page %d, want 2", exec.calls[0].Page)
	}
}

func TestPagedSearchStopsAtMaxPage(t *testing.T) {
	var pages []int
	exec := search.ExecutorFunc(func(ctx context.Context, r search.Request) (*search.Response, error) {
		pages = append(pages, r.Page)
		return &search.Response{
			Items:   []search.Item{{Title: "x", Link: "https://example.com/x"}},
			Queries: &search.Queries{NextPage: []search.QueryInfo{{}}},
		}, nil
	})

	res := pagedSearch(context.Background(), exec, "en", searchOptions{query: "cats", typ: search.TypeAll, page: 9, more: 20})
	if len(pages) != 2 || pages[1] != search.MaxPage || res.Page != search.MaxPage {
		t.Errorf("fetched pages %v, ended at page %d", pages, res.Page)
	}
}

func TestSearchFailureMessages(t *testing.T) {
	exec := &fakeSearch{}

	res := sessionSearch(context.Background(), exec, "en", searchOptions{query: "quota", typ: search.TypeAll, page: 1})
	if res.Err != "quota exceeded" {
		t.Errorf("upstream error = %q", res.Err)
	}

	res = pagedSearch(context.Background(), exec, "fa", searchOptions{query: "down", typ: search.TypeAll, page: 2})
	if res.Err != "خطایی در برقراری ارتباط رخ داد" {
		t.Errorf("transport error = %q", res.Err)
	}
}

func TestPrintSearchOutput(t *testing.T) {
	res := searchResult{
		Items: []search.Item{{
			Title:       "plain",
			HTMLTitle:   "<b>Cats</b> &amp; dogs",
			Link:        "https://example.com/cats",
			HTMLSnippet: "All about <b>cats</b>",
		}},
		Page:        1,
		Info:        &search.SearchInformation{FormattedTotalResults: "10", FormattedSearchTime: "0.1"},
		HasNextPage: true,
	}
	opts := searchOptions{query: "cats", typ: search.TypeAll}

	var buf bytes.Buffer
	printSearchText(&buf, "en", opts, res)
	out := buf.String()
	for _, want := range []string{"Found: 10 (0.1 seconds)", "Cats & dogs", "https://example.com/cats", "All about cats", "--page 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := printSearchJSON(&buf, opts, res); err != nil {
		t.Fatal(err)
	}
	var decoded api.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if decoded.Count != 1 || decoded.NextPage != 2 || decoded.Query != "cats" {
		t.Errorf("unexpected JSON output %+v", decoded)
	}
}

func TestPrintHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	recorded := withHistory(&fakeSearch{}, store)
	if _, err := recorded.Execute(context.Background(), search.Request{Term: "owls", Type: search.TypeImage, Page: 1}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printHistory(&buf, entries, "en", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "owls") || !strings.Contains(buf.String(), "image, page 1, 2 items of 1000") {
		t.Errorf("unexpected history output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "just now") {
		t.Errorf("English history should use English times:\n%s", buf.String())
	}

	buf.Reset()
	if err := printHistory(&buf, entries, "fa", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "همین الان") || strings.Contains(buf.String(), "just now") {
		t.Errorf("Persian history should use Persian times:\n%s", buf.String())
	}

	buf.Reset()
	if err := printHistoryStats(&buf, history.Stats{Searches: 1, UniqueTerms: 1, Last: time.Now()}, "fa", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "همین الان") {
		t.Errorf("Persian stats should use Persian times:\n%s", buf.String())
	}

	buf.Reset()
	if err := printHistory(&buf, nil, "en", true); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty JSON history = %q", buf.String())
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shen", "config.toml")

	if err := initConfig(path, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := initConfig(path, false); err == nil {
		t.Error("init must not overwrite without --force")
	}
	if err := initConfig(path, true); err != nil {
		t.Errorf("init --force: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if cfg.Locale != config.DefaultLocale || !cfg.History.Enabled {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
