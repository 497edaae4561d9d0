package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/metrics"
	"github.com/maya-florenko/miniappbot/internal/miniapp"
)

func newOpsServer(t *testing.T) *httptest.Server {
	t.Helper()
	metrics.MustRegister()
	srv := httptest.NewServer(NewOpsHandler(miniapp.NewLinker("https://example.com/app"), zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, string(b)
}

func TestOpsHealthAndMetrics(t *testing.T) {
	srv := newOpsServer(t)

	code, body := get(t, srv.URL+"/healthz")
	if code != http.StatusOK || body != "ok" {
		t.Errorf("/healthz = %d %q", code, body)
	}

	metrics.IncUpdate("start")
	code, body = get(t, srv.URL+"/metrics")
	if code != http.StatusOK || !strings.Contains(body, "bot_updates_total") {
		t.Errorf("/metrics = %d, missing bot_updates_total", code)
	}
}

func TestOpsLink(t *testing.T) {
	srv := newOpsServer(t)

	code, body := get(t, srv.URL+"/link?id=42&page=create.html")
	if code != http.StatusOK {
		t.Fatalf("/link = %d %s", code, body)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"url":   "https://example.com/app/create.html?user=NDI",
		"token": "NDI",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("/link mismatch (-want +got):\n%s", diff)
	}

	code, body = get(t, srv.URL+"/link?id=42&page=x%3Fuser%3Dforged%23")
	if code != http.StatusOK {
		t.Fatalf("/link = %d %s", code, body)
	}
	got = nil
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if want := "https://example.com/app/x%3Fuser=forged%23?user=NDI"; got["url"] != want {
		t.Errorf("url = %q, want %q", got["url"], want)
	}

	for _, q := range []string{"", "?id=abc", "?id=-1"} {
		if code, _ := get(t, srv.URL+"/link"+q); code != http.StatusBadRequest {
			t.Errorf("/link%s = %d, want 400", q, code)
		}
	}
}

func TestOpsWhoami(t *testing.T) {
	srv := newOpsServer(t)

	code, body := get(t, srv.URL+"/whoami?user=MTIzNDU2Nzg5")
	if code != http.StatusOK {
		t.Fatalf("/whoami = %d %s", code, body)
	}
	if strings.TrimSpace(body) != `{"telegram_id":123456789}` {
		t.Errorf("/whoami body = %s", body)
	}

	for _, q := range []string{"", "?user=not-valid-base64!!", "?user=YWJj"} {
		if code, _ := get(t, srv.URL+"/whoami"+q); code != http.StatusBadRequest {
			t.Errorf("/whoami%s = %d, want 400", q, code)
		}
	}
}
