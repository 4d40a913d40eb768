package web // nolint:testpackage

import (
	"inhouse/internal/back"
	"inhouse/internal/config"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDataJSON = `{
    "players": {
        "76561198000000001": {"mu": 30, "sigma": 2, "games": 3, "wins": 2, "losses": 1},
        "76561198000000002": {"mu": 20, "sigma": 4, "games": 3, "wins": 1, "losses": 2}
    },
    "matches": [
        {"radiant": ["76561198000000001"], "dire": ["76561198000000002"], "winner": "radiant", "date": "2024-03-01T20:00:00Z"},
        {"radiant": ["76561198000000002"], "dire": ["76561198000000001", "76561198000009999"], "winner": "radiant", "date": "2024-03-02T20:00:00Z", "matchId": 7600000001},
        {"radiant": ["76561198000000001"], "dire": ["76561198000000002"], "winner": "dire", "date": "2024-03-03T20:00:00Z"}
    ]
}`

func testConfig() *config.Config {
	return &config.Config{
		ResourcesDir:       "../../resources",
		Locale:             "en",
		Title:              "Test <League>",
		Description:        "Played every *Friday*.",
		RecentMatches:      config.DefaultRecentMatches,
		MinGamesForWinrate: config.DefaultMinGamesForWinrate,
		ListenAddr:         config.DefaultListenAddr,
	}
}

func createTestServer(t *testing.T, raw string) *Server {
	t.Helper()

	ds, err := back.DecodeDataset([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}

	conf := testConfig()
	b, err := back.NewFromDataset(ds, back.Names{"76561198000000001": "Alice"}, conf)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewServer(b, conf)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func get(t *testing.T, s *Server, target string, header map[string]string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res, string(body)
}

func TestIndex(t *testing.T) {
	s := createTestServer(t, testDataJSON)

	for _, target := range []string{"/", "/index.html"} {
		res, body := get(t, s, target, nil)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, res.StatusCode)
		}

		expected := []string{
			"Test &lt;League&gt;",
			"<em>Friday</em>",
			`class="rank-1"`,
			`href="/players/76561198000000001.html"`,
			"Alice",
			"RADIANT WINS",
			"DIRE WINS",
			"9999",
			"Never",
			"/ratings.svg",
			"https://www.dotabuff.com/matches/7600000001",
		}
		for _, v := range expected {
			if !strings.Contains(body, v) {
				t.Errorf("%s: expected body to contain %q", target, v)
			}
		}

		if !strings.HasPrefix(res.Header.Get("Cache-Control"), "public") {
			t.Errorf("unexpected Cache-Control %q", res.Header.Get("Cache-Control"))
		}
	}
}

func TestIndexEscapesNames(t *testing.T) {
	ds, err := back.DecodeDataset([]byte(testDataJSON), nil)
	if err != nil {
		t.Fatal(err)
	}

	conf := testConfig()
	b, err := back.NewFromDataset(ds, back.Names{
		"76561198000000001": `<script>alert("x")</script>`,
		"76561198000000002": `"><img src=x onerror=alert(1)>`,
	}, conf)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewServer(b, conf)
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []string{"/", "/players/76561198000000001.html", "/players/76561198000000002.html"} {
		_, body := get(t, s, target, nil)
		for _, v := range []string{"<script>alert", "<img src=x"} {
			if strings.Contains(body, v) {
				t.Errorf("%s: unescaped player name %q in body", target, v)
			}
		}
	}

	_, body := get(t, s, "/", nil)
	if n := strings.Count(body, "&lt;script&gt;alert("); n < 2 {
		t.Errorf("expected the escaped name on the leaderboard and match cards, found it %d times", n)
	}
}

func TestIndexEmpty(t *testing.T) {
	s := createTestServer(t, `{"players": {}, "matches": []}`)

	_, body := get(t, s, "/", nil)
	for _, v := range []string{"No games played yet", `colspan="6"`, "No matches recorded yet"} {
		if !strings.Contains(body, v) {
			t.Errorf("expected body to contain %q", v)
		}
	}
}

func TestIndexLocale(t *testing.T) {
	s := createTestServer(t, testDataJSON)

	type entry struct {
		target, acceptLanguage string
		locale, contains       string
	}

	cases := []entry{
		{"/", "", "en", "Recent matches"},
		{"/", "fr-FR,fr;q=0.9", "fr", "Parties récentes"},
		{"/?lang=fr", "en-US", "fr", "Parties récentes"},
		{"/?lang=de", "", "en", "Recent matches"},
	}

	for k, v := range cases {
		res, body := get(t, s, v.target, map[string]string{"Accept-Language": v.acceptLanguage})
		if actual := res.Header.Get("Content-Language"); actual != v.locale {
			t.Errorf("case #%d: expected locale %s got %s", k, v.locale, actual)
		}
		if !strings.Contains(body, v.contains) {
			t.Errorf("case #%d: expected body to contain %q", k, v.contains)
		}
	}
}

func TestPlayerPage(t *testing.T) {
	s := createTestServer(t, testDataJSON)

	res, body := get(t, s, "/players/76561198000000002.html", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if !strings.Contains(body, "76561198000000002 - Test &lt;League&gt;") {
		t.Error("expected the player name in the title")
	}
	if n := strings.Count(body, `class="match"`); n != 3 {
		t.Errorf("expected 3 matches got %d", n)
	}

	res, _ = get(t, s, "/players/76561198000009999.html", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for an unrated player, got %d", res.StatusCode)
	}
}

func TestRatingsGraph(t *testing.T) {
	s := createTestServer(t, testDataJSON)

	res, body := get(t, s, "/ratings.svg", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if res.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("unexpected content type %s", res.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "<svg") {
		t.Error("expected an SVG document")
	}
}

func TestStaticAsset(t *testing.T) {
	s := createTestServer(t, testDataJSON)

	res, body := get(t, s, "/_/style.css", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if !strings.Contains(body, ".rank-1") {
		t.Error("unexpected stylesheet content")
	}
}

func TestRender(t *testing.T) {
	s := createTestServer(t, testDataJSON)
	dir := t.TempDir()

	if err := s.Render(dir); err != nil {
		t.Fatal(err)
	}

	for _, v := range []string{
		"index.html",
		"ratings.svg",
		"_/style.css",
		"players/76561198000000001.html",
		"players/76561198000000002.html",
	} {
		if _, err := os.Stat(filepath.Join(dir, v)); err != nil {
			t.Errorf("expected %s to be written: %s", v, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="players/76561198000000001.html"`) ||
		!strings.Contains(string(index), `href="_/style.css"`) {
		t.Error("expected relative links in index.html")
	}

	player, err := os.ReadFile(filepath.Join(dir, "players/76561198000000001.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(player), `href="../_/style.css"`) {
		t.Error("expected relative asset links in player pages")
	}
}

func TestTplDict(t *testing.T) {
	m, err := tplDict("a", 1, "b", "two")
	if err != nil {
		t.Fatal(err)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected map %v", m)
	}

	if _, err := tplDict("a"); err == nil {
		t.Error("expected an error on odd arguments")
	}
	if _, err := tplDict(1, 2); err == nil {
		t.Error("expected an error on non-string keys")
	}
}

func TestTplMarkdown(t *testing.T) {
	if actual := tplMarkdown("  "); actual != "" {
		t.Errorf("expected empty output, got %q", actual)
	}
	if actual := string(tplMarkdown("**x**")); !strings.Contains(actual, "<strong>x</strong>") {
		t.Errorf("unexpected markdown output %q", actual)
	}
}

func TestTplAssetIntegrity(t *testing.T) {
	integrity := tplAssetIntegrity("../../resources")

	a, err := integrity("style.css")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(a, "sha512-") {
		t.Errorf("unexpected integrity %s", a)
	}

	b, err := integrity("style.css")
	if err != nil || a != b {
		t.Error("expected a stable integrity hash")
	}

	if _, err := integrity("missing.css"); err == nil {
		t.Error("expected an error on a missing asset")
	}
}
