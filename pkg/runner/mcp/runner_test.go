package mcp

import (
	"context"
	"errors"
	"net"
	"testing"
)

func TestRunnerEndpoint(t *testing.T) {
	tests := map[string]string{
		"":        "/mcp",
		"  ":      "/mcp",
		"tools":   "/tools",
		"/tools":  "/tools",
		" /home ": "/home",
	}
	for in, want := range tests {
		if got := (Runner{HTTPEndpointPath: in}).endpoint(); got != want {
			t.Fatalf("endpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunnerRejectsHalfTLSPair(t *testing.T) {
	r := Runner{App: newTestService(t).App, HTTPServerCert: "cert.pem"}
	if err := r.Do(context.Background()); !errors.Is(err, ErrTLSPair) {
		t.Fatalf("expected ErrTLSPair, got %v", err)
	}
	r.HTTPServerCert, r.HTTPServerKey = "", "key.pem"
	if err := r.Do(context.Background()); !errors.Is(err, ErrTLSPair) {
		t.Fatalf("expected ErrTLSPair for key only, got %v", err)
	}
}

func TestRunnerUnknownTransport(t *testing.T) {
	r := Runner{App: newTestService(t).App, Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected an error for an unknown transport")
	}
}

func TestRunnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var bound net.Addr
	r := Runner{
		App:            newTestService(t).App,
		HTTPListenAddr: "127.0.0.1:0",
		OnHTTPListening: func(a net.Addr) {
			bound = a
			cancel()
		},
	}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if bound == nil {
		t.Fatalf("listener address was never reported")
	}
}
