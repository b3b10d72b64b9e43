package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	if !IsHTMX(r) || !WantsPartial(r) {
		t.Fatal("expected htmx partial request")
	}
	r.Header.Set("Hx-History-Restore-Request", "true")
	if WantsPartial(r) {
		t.Fatal("history restore needs the full document")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/x", nil)
	if IsHTMX(r2) || IsHistoryRestore(r2) {
		t.Fatal("expected defaults to false")
	}
}

func TestCurrentPath(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	if got := CurrentPath(r); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
	r.Header.Set("Referer", "http://localhost:8080/login?next=1")
	if got := CurrentPath(r); got != "/login" {
		t.Fatalf("referer path: %q", got)
	}
	r.Header.Set("Hx-Current-Url", "http://localhost:8080/dashboard")
	if got := CurrentPath(r); got != "/dashboard" {
		t.Fatalf("htmx current url wins: %q", got)
	}
}

func TestSetHXTrigger_Accumulates(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXTrigger(rr, "first", nil)
	SetHXTrigger(rr, "second", map[string]string{"message": "hi"})

	var got map[string]any
	if err := json.Unmarshal([]byte(rr.Header().Get("Hx-Trigger")), &got); err != nil {
		t.Fatalf("decode trigger: %v", err)
	}
	if got["first"] != true {
		t.Fatalf("first event lost: %v", got)
	}
	second, ok := got["second"].(map[string]any)
	if !ok || second["message"] != "hi" {
		t.Fatalf("second event payload: %v", got["second"])
	}
}

func TestHTMXResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	HTMX(rr).Trigger("saved", nil).Redirect("/login")
	if rr.Code != http.StatusNoContent || rr.Header().Get("Hx-Redirect") != "/login" {
		t.Fatalf("redirect: code=%d header=%q", rr.Code, rr.Header().Get("Hx-Redirect"))
	}

	rr = httptest.NewRecorder()
	HTMX(rr).PushURL("/dashboard").Stay()
	if rr.Code != http.StatusNoContent || rr.Header().Get("Hx-Reswap") != "none" {
		t.Fatalf("stay: code=%d reswap=%q", rr.Code, rr.Header().Get("Hx-Reswap"))
	}
	if rr.Header().Get("Hx-Push-Url") != "/dashboard" {
		t.Fatalf("push url: %q", rr.Header().Get("Hx-Push-Url"))
	}
}
