//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

var tokenRe = regexp.MustCompile(`name="token" value="([^"]+)"`)

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	// the inventory page renders with counters and a product table
	body := getBody(t, baseURL+"/", 200)
	if !strings.Contains(body, "Inventory") || !strings.Contains(body, "Low stock") {
		t.Fatalf("inventory page incomplete")
	}

	// the JSON projection agrees with itself
	var res struct {
		Items []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Stock int    `json:"stock"`
		} `json:"items"`
		Counts struct {
			Total    int `json:"total"`
			LowStock int `json:"low_stock"`
			InStock  int `json:"in_stock"`
		} `json:"counts"`
		TotalPages int `json:"total_pages"`
	}
	decodeJSON(t, baseURL+"/api/products", &res)
	if len(res.Items) == 0 {
		t.Fatalf("expected non-empty product list")
	}
	if res.Counts.LowStock+res.Counts.InStock != res.Counts.Total {
		t.Fatalf("count partition broken: %+v", res.Counts)
	}

	// edit the first product's stock through the modal form
	target := res.Items[0]
	modal := getBody(t, baseURL+"/?edit="+url.QueryEscape(target.ID), 200)
	m := tokenRe.FindStringSubmatch(modal)
	if m == nil {
		t.Fatalf("no form token on modal page")
	}

	newStock := target.Stock + 1
	form := url.Values{
		"token": {m[1]},
		"stock": {fmt.Sprintf("%d", newStock)},
	}
	resp, err := noRedirectClient().PostForm(baseURL+"/products/"+target.ID+"/stock", form)
	if err != nil {
		t.Fatalf("submit stock: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 303 {
		t.Fatalf("submit stock: status %d, want 303", resp.StatusCode)
	}

	// the optimistic update and its notice are visible on the page
	after := getBody(t, baseURL+"/", 200)
	wantNotice := fmt.Sprintf("updated to %d", newStock)
	if !strings.Contains(after, wantNotice) {
		t.Fatalf("success notice missing (want %q)", wantNotice)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service never became ready: %v", ctx.Err())
		default:
		}

		resp, err := http.Get(url)
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == 200 {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func getBody(t *testing.T, url string, wantStatus int) string {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	return string(b)
}

func decodeJSON(t *testing.T, url string, out any) {
	t.Helper()

	body := getBody(t, url, 200)
	if err := json.Unmarshal([]byte(body), out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
