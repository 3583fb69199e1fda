package dataapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/users"
	"github.com/mobishop/mobishop-backend/pkg/config"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.StorefrontConfig{DataAPIURL: srv.URL + "/", DataAPITimeout: 2 * time.Second})
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": code, "message": msg}})
}

func TestFetchMissingCartReturnsNil(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/carts" || r.URL.Query().Get("userEmail") != "ali@example.com" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
		writeData(w, http.StatusOK, []any{})
	}))

	remote, err := client.Carts().Fetch(context.Background(), "ali@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote != nil {
		t.Fatalf("expected nil remote, got %+v", remote)
	}
}

func TestSaveCreatesThenPatches(t *testing.T) {
	cartID := uuid.New()
	var stored []byte
	var methods []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/carts":
			if stored == nil {
				writeData(w, http.StatusOK, []any{})
				return
			}
			writeData(w, http.StatusOK, []json.RawMessage{stored})
		case r.Method == http.MethodPost && r.URL.Path == "/carts":
			body, _ := io.ReadAll(r.Body)
			var in map[string]any
			_ = json.Unmarshal(body, &in)
			in["id"] = cartID.String()
			stored, _ = json.Marshal(in)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":` + string(stored) + `}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/carts/"+cartID.String():
			body, _ := io.ReadAll(r.Body)
			var in map[string]any
			_ = json.Unmarshal(body, &in)
			in["id"] = cartID.String()
			in["userEmail"] = "ali@example.com"
			stored, _ = json.Marshal(in)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":` + string(stored) + `}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))

	line := cart.Line{Product: cart.ProductSnapshot{ID: uuid.New(), Title: "Bere", Price: decimal.RequireFromString("89.90")}, Qty: 2}
	store := client.Carts()

	created, err := store.Save(context.Background(), "ali@example.com", []cart.Line{line})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.ID != cartID || len(created.Lines) != 1 {
		t.Fatalf("unexpected created cart %+v", created)
	}

	updated, err := store.Save(context.Background(), "ali@example.com", nil)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(updated.Lines) != 0 {
		t.Fatalf("expected cleared cart, got %+v", updated.Lines)
	}

	want := []string{"GET /carts", "POST /carts", "GET /carts", "PATCH /carts/" + cartID.String()}
	if len(methods) != len(want) {
		t.Fatalf("unexpected call sequence %v", methods)
	}
	for i := range want {
		if methods[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, methods[i], want[i])
		}
	}
}

func TestRemoteErrorKeepsCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, string(pkgerrors.CodeUnauthorized), "invalid credentials")
	}))

	_, err := client.Authenticate(context.Background(), users.AuthenticateInput{Email: "a@example.com", Password: "x"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized || typed.Message() != "invalid credentials" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestUnreachableIsDependencyError(t *testing.T) {
	client := New(config.StorefrontConfig{DataAPIURL: "http://127.0.0.1:1", DataAPITimeout: time.Second})

	_, err := client.Carts().Fetch(context.Background(), "a@example.com")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestBumpSalesSendsDelta(t *testing.T) {
	id := uuid.New()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodPatch || body["salesDelta"] != float64(3) {
			t.Errorf("unexpected request %s %v", r.Method, body)
		}
		writeData(w, http.StatusOK, map[string]any{"id": id.String()})
	}))

	if err := client.BumpSales(context.Background(), id, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPingHitsLiveness(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/live" {
			writeErr(w, http.StatusNotFound, "NOT_FOUND", "no route")
			return
		}
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}

	down := New(config.StorefrontConfig{DataAPIURL: "http://127.0.0.1:1", DataAPITimeout: 200 * time.Millisecond})
	err := down.Ping(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
