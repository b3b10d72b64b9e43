package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestClientQualify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{prefix: "gate", name: " navigation/decision ", want: "gate.navigation_decision"},
		{prefix: "", name: "auth..event", want: "auth.event"},
		{prefix: "gate", name: "  ", want: ""},
		{prefix: "gate", name: "multi  space", want: "gate.multi__space"},
	}
	for _, tt := range tests {
		c := &Client{prefix: tt.prefix}
		if got := c.qualify(tt.name); got != tt.want {
			t.Fatalf("qualify(%q) with prefix %q = %q, want %q", tt.name, tt.prefix, got, tt.want)
		}
	}
}

func TestEncodeTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{"env": "prod", " service ": " gate "}
	local := map[string]string{"result": " blocked ", "": "ignored", "env": "stage"}

	got := encodeTags(global, local)
	want := "|#env:stage,result:blocked,service:gate"
	if got != want {
		t.Fatalf("encodeTags mismatch\n got: %q\nwant: %q", got, want)
	}
	if got := encodeTags(nil, nil); got != "" {
		t.Fatalf("encodeTags(nil, nil) = %q, want empty string", got)
	}
}

func TestClientCountWritesLine(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{prefix: "gate", conn: clientConn, globalTags: map[string]string{}}
	lines := make(chan string, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := peerConn.Read(buf)
		lines <- string(buf[:n])
	}()

	client.Count("navigation.decision", 1, map[string]string{"result": "allowed"})

	select {
	case line := <-lines:
		if line != "gate.navigation.decision:1|c|#result:allowed" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for metric")
	}
	_ = client.Close()
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{conn: clientConn}
	if !client.Enabled() {
		t.Fatal("expected Enabled with active connection")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected disabled after Close")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	nilClient.Count("ignored", 1, nil)
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}
