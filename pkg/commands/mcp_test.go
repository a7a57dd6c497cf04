package commands

import (
	"net"
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/runner/mcp"
)

func TestMCPFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   mcpFlags
		want    mcp.Transport
		addr    string
		path    string
		wantErr bool
	}{
		{name: "http default", flags: mcpFlags{transport: "http", host: "127.0.0.1", port: 8080, path: "/mcp"}, want: mcp.TransportHTTP, addr: "127.0.0.1:8080", path: "/mcp"},
		{name: "path without slash", flags: mcpFlags{transport: "HTTP", port: 9000, path: "tools"}, want: mcp.TransportHTTP, addr: "127.0.0.1:9000", path: "/tools"},
		{name: "stdio", flags: mcpFlags{transport: "stdio", path: "/mcp"}, want: mcp.TransportStdio, path: "/mcp"},
		{name: "bad port", flags: mcpFlags{transport: "http", port: 70000}, wantErr: true},
		{name: "bad transport", flags: mcpFlags{transport: "carrier-pigeon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.flags.runner(&cobra.Command{})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("runner: %v", err)
			}
			if r.Transport != tt.want || r.HTTPListenAddr != tt.addr || r.HTTPEndpointPath != tt.path {
				t.Fatalf("got %+v", r)
			}
		})
	}
}

func TestListenURL(t *testing.T) {
	r := mcp.Runner{HTTPEndpointPath: "/mcp"}
	addr := &net.TCPAddr{IP: net.IPv4zero, Port: 4242}
	if got := listenURL(r, "0.0.0.0", addr); got != "http://127.0.0.1:4242/mcp" {
		t.Fatalf("unexpected url %q", got)
	}
	r.HTTPServerCert, r.HTTPServerKey = "cert.pem", "key.pem"
	if got := listenURL(r, "::1", addr); got != "https://[::1]:4242/mcp" {
		t.Fatalf("unexpected url %q", got)
	}
}
