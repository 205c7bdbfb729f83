package stockmanager_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"BookStock/internal/auth"
	"BookStock/internal/inventory"
	"BookStock/internal/stockmanager"
)

const secret = "0123456789abcdef0123456789abcdef"

func newStockTS(t *testing.T) (*httptest.Server, *auth.TokenMaker, *inventory.Inventory) {
	t.Helper()

	jwt := auth.NewTokenMaker(secret, time.Minute)
	inv := inventory.New()
	s := &stockmanager.Server{Store: inv, JWT: jwt, Log: zaptest.NewLogger(t)}

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts, jwt, inv
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	_ = resp.Body.Close()
	return resp
}

func TestStockManager_RoleRequired(t *testing.T) {
	ts, jwt, _ := newStockTS(t)

	tok, err := jwt.New(auth.Operator{ID: "op_1", Email: "c@example.com", Role: "customer"})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if resp := do(t, http.MethodGet, ts.URL+"/books", tok, ""); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status=%d want=403", resp.StatusCode)
	}
}

func TestStockManager_AddAndRemove(t *testing.T) {
	ts, jwt, inv := newStockTS(t)

	tok, err := jwt.New(auth.Operator{ID: "op_1", Email: "m@example.com", Role: auth.RoleManager})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	body := `{"books":[{"isbn":7,"title":"Go","author":"Pike","price_cents":100,"num_copies":2}]}`
	if resp := do(t, http.MethodPost, ts.URL+"/books", tok, body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status=%d", resp.StatusCode)
	}
	if inv.Len() != 1 {
		t.Fatalf("len=%d want=1", inv.Len())
	}

	if resp := do(t, http.MethodPost, ts.URL+"/copies", tok, `{"copies":[{"isbn":7,"num_copies":3}]}`); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("copies status=%d", resp.StatusCode)
	}
	if got := inv.StockBooks(); len(got) != 1 || got[0].NumCopies != 5 {
		t.Fatalf("after copies: %+v", got)
	}

	if resp := do(t, http.MethodPost, ts.URL+"/books/remove", tok, `{"isbns":[8]}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("remove absent status=%d", resp.StatusCode)
	}
	if resp := do(t, http.MethodPost, ts.URL+"/books/remove", tok, `{"isbns":[7]}`); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove status=%d", resp.StatusCode)
	}
	if inv.Len() != 0 {
		t.Fatalf("len=%d want=0", inv.Len())
	}
}
