package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sushihentaime/blogapi/internal/blogservice"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/metrics"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

const testSecret = "test-secret"

func testConfig() *Config {
	return &Config{
		Port:           "4000",
		Environment:    "development",
		Version:        "1.0.0",
		TrustedOrigins: []string{"http://localhost:5173", "https://mern-blog-ui.netlify.app"},
		JWTSecret:      testSecret,
	}
}

// newBareApplication has no database, which is enough for middleware that only verifies tokens.
func newBareApplication(t *testing.T, cfg *Config) *application {
	t.Helper()

	registry := prometheus.NewRegistry()

	return &application{
		config:      cfg,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		userService: userservice.NewUserService(nil, nil, userservice.NewTokenMaker(testSecret, userservice.TokenTTL)),
		collector:   metrics.NewCollector(registry),
		registry:    registry,
	}
}

func newTestApplication(t *testing.T, cfg *Config) (*application, *sql.DB) {
	t.Helper()

	db := common.TestDB(t)
	registry := prometheus.NewRegistry()

	app := &application{
		config:      cfg,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		userService: userservice.NewUserService(db, nil, userservice.NewTokenMaker(testSecret, userservice.TokenTTL)),
		blogService: blogservice.NewBlogService(db, common.NewCache(5*time.Minute, 10*time.Minute)),
		collector:   metrics.NewCollector(registry),
		registry:    registry,
	}

	return app, db
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

type testResponse struct {
	status int
	header http.Header
	body   []byte
}

func (res testResponse) envelope(t *testing.T) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(res.body, &env); err != nil {
		t.Fatalf("could not decode %q: %v", res.body, err)
	}
	return env
}

func (res testResponse) blog(t *testing.T) blogservice.Blog {
	t.Helper()

	var blog blogservice.Blog
	if err := json.Unmarshal(res.body, &blog); err != nil {
		t.Fatalf("could not decode %q: %v", res.body, err)
	}
	return blog
}

func (res testResponse) blogs(t *testing.T) []blogservice.Blog {
	t.Helper()

	var blogs []blogservice.Blog
	if err := json.Unmarshal(res.body, &blogs); err != nil {
		t.Fatalf("could not decode %q: %v", res.body, err)
	}
	return blogs
}

func (res testResponse) cookie(name string) *http.Cookie {
	for _, c := range (&http.Response{Header: res.header}).Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// do sends payload as JSON unless it is nil. token, when set, is sent as the session cookie.
func (ts *testServer) do(t *testing.T, method, path string, payload any, token string) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return testResponse{status: res.StatusCode, header: res.Header, body: responseBody}
}
