package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/phoneshell/pkg/app"
)

// Transport is how the home screen is exposed to MCP clients.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr = "127.0.0.1:8080"
	defaultEndpoint   = "/mcp"
	shutdownGrace     = 5 * time.Second
)

// ErrTLSPair is returned when only one half of a certificate pair is set.
var ErrTLSPair = errors.New("mcp: tls cert and key must be set together")

// Runner serves one phone's home screen over MCP.
type Runner struct {
	App     *app.Service
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	// OnHTTPListening is told the bound address, which matters for port 0.
	OnHTTPListening func(net.Addr)
	HTTPServerCert  string
	HTTPServerKey   string
}

func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return ErrNoApp
	}
	srv := r.newServer()

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

func (r Runner) newServer() *server.MCPServer {
	name, version := r.Name, r.Version
	if name == "" {
		name = "phoneshell"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Inspect and rearrange a phone home screen: pages of apps, a four slot dock, widgets and notifications."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// endpoint is the mount path for the streamable handler, always rooted.
func (r Runner) endpoint() string {
	p := strings.TrimSpace(r.HTTPEndpointPath)
	if p == "" {
		return defaultEndpoint
	}
	return "/" + strings.TrimPrefix(p, "/")
}

func (r Runner) tls() (bool, error) {
	switch {
	case r.HTTPServerCert == "" && r.HTTPServerKey == "":
		return false, nil
	case r.HTTPServerCert == "" || r.HTTPServerKey == "":
		return false, ErrTLSPair
	}
	return true, nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	useTLS, err := r.tls()
	if err != nil {
		return err
	}
	addr := r.HTTPListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle(r.endpoint(), server.NewStreamableHTTPServer(srv))
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = hs.Shutdown(sctx)
	})
	defer stop()

	if useTLS {
		err = hs.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = hs.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
