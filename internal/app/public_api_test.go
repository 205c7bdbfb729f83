package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"BookStock/internal/app"
	"BookStock/internal/auth"
	"BookStock/internal/inventory"
	"BookStock/pkg/kit"
)

const (
	jwtSecret    = "0123456789abcdef0123456789abcdef"
	metricsToken = "scrape-token"
	managerEmail = "manager@example.com"
	managerPass  = "password123"
)

func newBookstockTS(t *testing.T) *httptest.Server {
	t.Helper()

	ops := auth.NewMemStore()
	if err := auth.Bootstrap(context.Background(), ops, managerEmail, managerPass, zap.NewNop()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	reg := prometheus.NewRegistry()
	inv := inventory.New(inventory.WithMetrics(inventory.NewMetrics(reg)))

	h := app.NewHandler(
		app.Deps{
			Inventory: inv,
			Operators: ops,
			JWT:       auth.NewTokenMaker(jwtSecret, time.Minute),
		},
		app.HTTPDeps{
			Log:            zap.NewNop(),
			Service:        "bookstock",
			Registry:       reg,
			MetricsEnabled: true,
			MetricsToken:   metricsToken,
		},
	)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func managerHeaders(t *testing.T, c *http.Client, baseURL string) map[string]string {
	t.Helper()

	resp, raw := doJSON(t, c, http.MethodPost, baseURL+"/auth/login", map[string]any{
		"email":    managerEmail,
		"password": managerPass,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d body=%s", resp.StatusCode, string(raw))
	}

	var lr auth.LoginResp
	if err := json.Unmarshal(raw, &lr); err != nil {
		t.Fatalf("decode login: %v body=%s", err, string(raw))
	}
	return map[string]string{"Authorization": "Bearer " + lr.AccessToken}
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()

	var er kit.ErrorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		t.Fatalf("decode error: %v body=%s", err, string(raw))
	}
	return er.Code
}

func TestBookstock_PublicAPI_HappyPath(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}
	mgr := managerHeaders(t, c, ts.URL)

	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/stock/books", map[string]any{
			"books": []map[string]any{
				{"isbn": 111, "title": "Go", "author": "Pike", "price_cents": 4990, "num_copies": 1, "editor_pick": true},
				{"isbn": 222, "title": "C", "author": "Ritchie", "price_cents": 3990, "num_copies": 5},
			},
		}, mgr)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add books status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/books/buy", map[string]any{
			"copies": []map[string]any{{"isbn": 222, "num_copies": 2}},
		}, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("buy status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/books?isbn=222,111", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("books status=%d body=%s", resp.StatusCode, string(raw))
		}

		var books []inventory.Book
		if err := json.Unmarshal(raw, &books); err != nil {
			t.Fatalf("decode books: %v body=%s", err, string(raw))
		}
		if len(books) != 2 || books[0].ISBN != 111 || books[1].ISBN != 222 {
			t.Fatalf("books=%+v", books)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/stock/books?isbn=222", nil, mgr)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("stock books status=%d body=%s", resp.StatusCode, string(raw))
		}

		var books []inventory.StockBook
		if err := json.Unmarshal(raw, &books); err != nil {
			t.Fatalf("decode stock books: %v body=%s", err, string(raw))
		}
		if len(books) != 1 || books[0].NumCopies != 3 {
			t.Fatalf("stock books=%+v", books)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/books/editor-picks?n=5", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("editor picks status=%d body=%s", resp.StatusCode, string(raw))
		}

		var picks []inventory.Book
		if err := json.Unmarshal(raw, &picks); err != nil {
			t.Fatalf("decode picks: %v body=%s", err, string(raw))
		}
		if len(picks) != 1 || picks[0].ISBN != 111 {
			t.Fatalf("picks=%+v", picks)
		}
	}
}

func TestBookstock_PublicAPI_BuyShortfall(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}
	mgr := managerHeaders(t, c, ts.URL)

	resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/stock/books", map[string]any{
		"books": []map[string]any{
			{"isbn": 111, "title": "Go", "author": "Pike", "price_cents": 100, "num_copies": 1},
		},
	}, mgr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add books status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodPost, ts.URL+"/books/buy", map[string]any{
		"copies": []map[string]any{{"isbn": 111, "num_copies": 3}},
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("buy status=%d body=%s", resp.StatusCode, string(raw))
	}
	if code := errorCode(t, raw); code != "stock_unavailable" {
		t.Fatalf("code=%s", code)
	}

	resp, raw = doJSON(t, c, http.MethodGet, ts.URL+"/stock/books?isbn=111", nil, mgr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stock books status=%d body=%s", resp.StatusCode, string(raw))
	}

	var books []inventory.StockBook
	if err := json.Unmarshal(raw, &books); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(books) != 1 || books[0].NumCopies != 1 || books[0].SaleMisses != 1 {
		t.Fatalf("after failed buy: %+v", books)
	}
}

func TestBookstock_PublicAPI_ErrorCodes(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}
	mgr := managerHeaders(t, c, ts.URL)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		headers map[string]string
		status  int
		code    string
	}{
		{"absent isbn", http.MethodGet, "/books?isbn=42", nil, nil, http.StatusNotFound, "not_found"},
		{"bad isbn", http.MethodGet, "/books?isbn=abc", nil, nil, http.StatusBadRequest, "invalid_isbn"},
		{"zero isbn", http.MethodGet, "/books?isbn=0", nil, nil, http.StatusBadRequest, "invalid_isbn"},
		{"null copies", http.MethodPost, "/books/buy", map[string]any{}, nil, http.StatusBadRequest, "null_input"},
		{"negative picks", http.MethodGet, "/books/editor-picks?n=-1", nil, nil, http.StatusBadRequest, "invalid_argument"},
		{"unknown field", http.MethodPost, "/books/buy", map[string]any{"nope": 1}, nil, http.StatusBadRequest, "bad_json"},
		{"ratings", http.MethodPost, "/books/ratings", map[string]any{"ratings": []any{}}, nil, http.StatusNotImplemented, "not_implemented"},
		{"top rated", http.MethodGet, "/books/top-rated?n=3", nil, nil, http.StatusNotImplemented, "not_implemented"},
		{"demand", http.MethodGet, "/stock/demand", nil, mgr, http.StatusNotImplemented, "not_implemented"},
		{"bad book", http.MethodPost, "/stock/books", map[string]any{
			"books": []map[string]any{{"isbn": 1, "title": "", "author": "a", "num_copies": 1}},
		}, mgr, http.StatusBadRequest, "invalid_book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, c, tt.method, ts.URL+tt.path, tt.body, tt.headers)
			if resp.StatusCode != tt.status {
				t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, tt.status, string(raw))
			}
			if code := errorCode(t, raw); code != tt.code {
				t.Fatalf("code=%s want=%s", code, tt.code)
			}
		})
	}
}

func TestBookstock_PublicAPI_StockRequiresAuth(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodDelete, ts.URL+"/stock/books", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodGet, ts.URL+"/stock/books", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestBookstock_Metrics(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}

	// Generate some traffic so the collectors have samples.
	doJSON(t, c, http.MethodGet, ts.URL+"/books/editor-picks", nil, nil)

	resp, _ := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("metrics without token status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer " + metricsToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	for _, name := range []string{"http_requests_total", "bookstock_operation_duration_seconds"} {
		if !strings.Contains(string(raw), name) {
			t.Fatalf("metrics output lacks %s", name)
		}
	}
}

func TestBookstock_Health(t *testing.T) {
	ts := newBookstockTS(t)
	c := &http.Client{}

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, resp.StatusCode, string(raw))
		}
	}
}
