package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/scopeboard/scopeboard/internal/instrumentation"
	"github.com/scopeboard/scopeboard/internal/server"
	"github.com/scopeboard/scopeboard/internal/tools/discord_tools"
	"github.com/scopeboard/scopeboard/internal/tools/gdrive_tools"
	"github.com/scopeboard/scopeboard/internal/tools/notes_tools"
	"github.com/scopeboard/scopeboard/internal/tools/slack_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		readOnly       bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing collection scope
tools for AI assistants over stdio.

Safety Mode:
  By default, both read and write tools are registered. Use --read-only to
  register only the tools that never mutate gateway state.

Gateway Configuration:
  --gateway-url and --gateway-token flags
  OR SCOPEBOARD_GATEWAY_URL and SCOPEBOARD_GATEWAY_TOKEN env vars
  OR gateway.url and gateway.token in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsConfig.Addr = addr
				}
			}
			return runServe(readOnly, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Register only read tools; scope mutations are unavailable")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(readOnly bool, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// Create server context with one client per integration source
	serverContext, err := server.NewServerContext(shutdownCtx, server.Config{
		GatewayURL:   viper.GetString("gateway.url"),
		GatewayToken: viper.GetString("gateway.token"),
		ReadOnly:     readOnly,
		Provider:     provider,
		AuditLogger:  instrumentation.NewAuditLogger(nil),
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			log.Printf("Error during server context shutdown: %v", err)
		}
	}()

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
			HealthChecker:           server.NewHealthChecker(serverContext),
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}()
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("scopeboard", version,
		mcpserver.WithToolCapabilities(true),
	)

	if readOnly {
		log.Println("Starting server in READ-ONLY mode (scope mutations unavailable)")
	}

	// Register all tools
	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	return runStdioServer(mcpSrv)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers the tools of every integration source
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Discord",
			register: func() error {
				return discord_tools.RegisterDiscordTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Slack",
			register: func() error {
				return slack_tools.RegisterSlackTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Google Drive",
			register: func() error {
				return gdrive_tools.RegisterGDriveTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Notes",
			register: func() error {
				return notes_tools.RegisterNotesTools(mcpSrv, ctx, readOnly)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}
