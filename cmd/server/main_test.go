package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/obelisk-mc/obelisk/internal/server/conn"
	"github.com/obelisk-mc/obelisk/internal/server/ping"
	"github.com/obelisk-mc/obelisk/internal/server/player"
)

func TestWithDefaultPort(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"localhost", "localhost:25565"},
		{"localhost:25570", "localhost:25570"},
		{"::1", "[::1]:25565"},
		{"[::1]:1", "[::1]:1"},
	}
	for _, tt := range tests {
		if got := withDefaultPort(tt.in); got != tt.want {
			t.Errorf("withDefaultPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &ping.Result{
		Status: conn.StatusDocument{
			Version:     conn.StatusVersion{Name: "1.13.2", Protocol: 404},
			Players:     conn.StatusPlayers{Max: 10, Online: 1, Sample: []player.Sample{{Name: "Notch", ID: "abc"}}},
			Description: conn.StatusText{Text: "Hello world"},
		},
		Latency: 3 * time.Millisecond,
	})

	out := buf.String()
	for _, want := range []string{"Hello world", "1.13.2", "protocol 404", "1/10", "NAME", "Notch"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := versionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "protocol 404") {
		t.Errorf("version output = %q", buf.String())
	}
}
