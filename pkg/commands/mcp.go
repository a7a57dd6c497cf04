package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/runner/mcp"
)

type mcpFlags struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func addMCP(topLevel *cobra.Command) {
	var f mcpFlags

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets an assistant read the home screen, move and
install apps, and list or clear notifications. Every call re-reads the store,
so the server sees changes made by the CLI or a running ui.`,
		Example: `
phoneshell mcp --transport stdio
phoneshell mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := f.runner(cmd)
			if err != nil {
				return err
			}

			log, closeLog, err := so.Logger(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer closeLog()

			persistence, cfg, err := so.Open(log)
			if err != nil {
				return err
			}
			defer func() { _ = persistence.Close() }()

			runner.App, err = app.New(persistence, app.Options{Logger: log.With("component", "mcp"), Locale: cfg.Locale()})
			if err != nil {
				return err
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&f.transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&f.host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&f.port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&f.path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&f.tlsCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&f.tlsKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// runner validates the flags and returns a Runner without its App.
func (f mcpFlags) runner(cmd *cobra.Command) (mcp.Runner, error) {
	r := mcp.Runner{
		Name:             "phoneshell",
		Version:          version,
		HTTPEndpointPath: "/" + strings.TrimPrefix(strings.TrimSpace(f.path), "/"),
		HTTPServerCert:   strings.TrimSpace(f.tlsCert),
		HTTPServerKey:    strings.TrimSpace(f.tlsKey),
	}

	switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(f.transport))); t {
	case mcp.TransportStdio:
		r.Transport = t
	case "", mcp.TransportHTTP:
		if f.port < 0 || f.port > 65535 {
			return r, fmt.Errorf("invalid http-port %d", f.port)
		}
		host := strings.TrimSpace(f.host)
		if host == "" {
			host = "127.0.0.1"
		}
		r.Transport = mcp.TransportHTTP
		r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(f.port))
		r.OnHTTPListening = func(a net.Addr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", listenURL(r, host, a))
		}
	default:
		return r, fmt.Errorf("unsupported transport %q (expected http or stdio)", f.transport)
	}
	return r, nil
}

// listenURL is the address a client should dial. Wildcard hosts print as
// loopback.
func listenURL(r mcp.Runner, host string, a net.Addr) string {
	scheme := "http"
	if r.HTTPServerCert != "" {
		scheme = "https"
	}
	port := ""
	if tcp, ok := a.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
	} else if _, p, err := net.SplitHostPort(a.String()); err == nil {
		port = p
	}
	switch host {
	case "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), r.HTTPEndpointPath)
}
