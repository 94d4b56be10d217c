package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/config"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/metrics"
	"github.com/mmynk/cosmocash/internal/service"
)

func setupRouter(t *testing.T) (*httptest.Server, *household.Household) {
	t.Helper()

	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>CosmoCash</h1>"), 0o644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log('hi')"), 0o644); err != nil {
		t.Fatalf("failed to write app.js: %v", err)
	}

	cfg := &config.Config{StaticPath: static, Metrics: true}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := household.New(household.State{}, nil)
	reg.MustRegister(metrics.NewHouseholdCollector(h))

	server := httptest.NewServer(newRouter(cfg, h, m, reg))
	t.Cleanup(server.Close)
	return server, h
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body), resp.Header
}

func TestRouter(t *testing.T) {
	server, h := setupRouter(t)

	client := connect.NewClient[service.AddRoommateRequest, service.RoommateResponse](
		http.DefaultClient,
		server.URL+service.HouseholdServiceAddRoommateProcedure,
		service.WithJSON(),
	)
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&service.AddRoommateRequest{
		Name:      "Alice",
		AvatarURL: "data:image/png;base64,AAAA",
	}))
	if err != nil {
		t.Fatalf("AddRoommate through router failed: %v", err)
	}
	if resp.Msg.Roommate.Name != "Alice" {
		t.Errorf("unexpected roommate %+v", resp.Msg.Roommate)
	}
	if len(h.Roommates()) != 1 {
		t.Errorf("expected the household to hold 1 roommate, got %d", len(h.Roommates()))
	}

	tests := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{"health", "/healthz", http.StatusOK, "ok"},
		{"metrics", "/metrics", http.StatusOK, "cosmocash_rpc_requests_total"},
		{"household gauges", "/metrics", http.StatusOK, "cosmocash_household_roommates 1"},
		{"csv export", "/export/expenses.csv", http.StatusOK, "Description,Amount,Tag,DueDate"},
		{"static file", "/app.js", http.StatusOK, "console.log"},
		{"index", "/", http.StatusOK, "<h1>CosmoCash</h1>"},
		{"spa fallback", "/insights", http.StatusOK, "<h1>CosmoCash</h1>"},
		{"unknown procedure", "/cosmocash.v1.NopeService/Nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := get(t, server.URL+tt.path)
			if code != tt.wantCode {
				t.Fatalf("GET %s: expected %d, got %d", tt.path, tt.wantCode, code)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("GET %s: expected body to contain %q, got %q", tt.path, tt.contains, body)
			}
		})
	}

	t.Run("xlsx export", func(t *testing.T) {
		code, _, header := get(t, server.URL+"/export/expenses.xlsx")
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if !strings.Contains(header.Get("Content-Disposition"), "cosmocash_expenses.xlsx") {
			t.Errorf("unexpected Content-Disposition %q", header.Get("Content-Disposition"))
		}
		if !strings.Contains(header.Get("Access-Control-Expose-Headers"), "Content-Disposition") {
			t.Errorf("Content-Disposition not exposed: %q", header.Get("Access-Control-Expose-Headers"))
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, server.URL+service.LedgerServiceAddExpenseProcedure, nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("OPTIONS failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
		if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("missing CORS origin header")
		}
	})
}

func TestAvatarDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	png := []byte("\x89PNG\r\n\x1a\n0000")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatalf("failed to write avatar: %v", err)
	}

	uri, err := avatarDataURI(path)
	if err != nil {
		t.Fatalf("avatarDataURI failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected data URI %q", uri)
	}

	if _, err := avatarDataURI(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestPrintDashboard(t *testing.T) {
	h := household.New(household.State{}, nil)

	var buf bytes.Buffer
	printDashboard(&buf, h.Dashboard())
	if !strings.Contains(buf.String(), "No roommates yet") {
		t.Errorf("unexpected empty dashboard %q", buf.String())
	}

	alice, _ := h.AddRoommate("Alice", "avatar")
	if _, err := h.AddExpense(household.ExpenseDraft{
		Description: "Rent",
		Amount:      80,
		DueDate:     "2099-01-01",
		Shares:      []calculator.Share{{RoommateID: alice.ID, Value: 80}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	buf.Reset()
	printDashboard(&buf, h.Dashboard())
	out := buf.String()
	for _, want := range []string{"Welcome back, Alice", "You owe            $80.00", "2099-01-01  Rent"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dashboard output:\n%s", want, out)
		}
	}
}
