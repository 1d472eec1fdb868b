package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/scopeboard/scopeboard/internal/discord"
	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/gdrive"
	"github.com/scopeboard/scopeboard/internal/instrumentation"
	"github.com/scopeboard/scopeboard/internal/notes"
	"github.com/scopeboard/scopeboard/internal/slack"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx           context.Context
	cancel        context.CancelFunc
	gatewayClient *gateway.Client
	discordClient *discord.Client
	slackClient   *slack.Client
	gdriveClient  *gdrive.Client
	notesClient   *notes.Client
	provider      *instrumentation.Provider
	auditLogger   *instrumentation.AuditLogger
	readOnly      bool
	mu            sync.RWMutex
	shutdown      bool
}

// Config holds the settings needed to build a ServerContext.
type Config struct {
	// GatewayURL is the base URL of the scope sync gateway.
	GatewayURL string

	// GatewayToken is the bearer token for gateway requests. Optional.
	GatewayToken string

	// ReadOnly disables all mutating tools when true.
	ReadOnly bool

	// Provider supplies metrics and tracing. Optional; a disabled
	// provider is used when nil.
	Provider *instrumentation.Provider

	// AuditLogger records tool invocations. Optional.
	AuditLogger *instrumentation.AuditLogger
}

// NewServerContext creates a new server context with one client per
// integration source, all sharing a single gateway client.
func NewServerContext(ctx context.Context, config Config) (*ServerContext, error) {
	if config.GatewayURL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}

	gatewayClient, err := gateway.NewClient(config.GatewayURL, config.GatewayToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	discordClient, err := discord.NewClient(gatewayClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	slackClient, err := slack.NewClient(gatewayClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create slack client: %w", err)
	}

	gdriveClient, err := gdrive.NewClient(gatewayClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create gdrive client: %w", err)
	}

	notesClient, err := notes.NewClient(gatewayClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes client: %w", err)
	}

	provider := config.Provider
	if provider == nil {
		provider, err = instrumentation.NewProvider(ctx, instrumentation.Config{Enabled: false})
		if err != nil {
			return nil, fmt.Errorf("failed to create disabled instrumentation provider: %w", err)
		}
	}

	auditLogger := config.AuditLogger
	if auditLogger == nil {
		auditLogger = instrumentation.NewAuditLogger(nil)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		gatewayClient: gatewayClient,
		discordClient: discordClient,
		slackClient:   slackClient,
		gdriveClient:  gdriveClient,
		notesClient:   notesClient,
		provider:      provider,
		auditLogger:   auditLogger,
		readOnly:      config.ReadOnly,
		shutdown:      false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GatewayClient returns the shared sync gateway client
func (sc *ServerContext) GatewayClient() *gateway.Client {
	return sc.gatewayClient
}

// DiscordClient returns the Discord scope client
func (sc *ServerContext) DiscordClient() *discord.Client {
	return sc.discordClient
}

// SlackClient returns the Slack scope client
func (sc *ServerContext) SlackClient() *slack.Client {
	return sc.slackClient
}

// GDriveClient returns the Google Drive scope client
func (sc *ServerContext) GDriveClient() *gdrive.Client {
	return sc.gdriveClient
}

// NotesClient returns the notes client
func (sc *ServerContext) NotesClient() *notes.Client {
	return sc.notesClient
}

// Metrics returns the metrics recorder
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.provider.Metrics()
}

// AuditLogger returns the audit logger for tool invocations
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// ReadOnly returns whether mutating tools are disabled
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
