package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scopeboard/scopeboard/internal/scope"
	"github.com/scopeboard/scopeboard/internal/server"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List all connected sources and their collection scope",
		Long: `List every parent scope of every connected source (Discord servers,
Slack workspaces, Drive accounts) with its collection default and how many
of its leaves currently resolve to collecting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(cmd.Context())
		},
	}
}

// sourceRow is one table line: a parent scope of one source.
type sourceRow struct {
	Source     string
	ID         string
	Name       string
	Default    bool
	Leaves     int
	Collecting int
}

func runSources(ctx context.Context) error {
	sc, err := server.NewServerContext(ctx, server.Config{
		GatewayURL:   viper.GetString("gateway.url"),
		GatewayToken: viper.GetString("gateway.token"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = sc.Shutdown() }()

	var rows []sourceRow

	discordServers, err := sc.DiscordClient().ListServers(ctx)
	if err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	for _, sn := range discordServers {
		rows = append(rows, newSourceRow("discord", sn))
	}

	workspaces, err := sc.SlackClient().ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	for _, sn := range workspaces {
		rows = append(rows, newSourceRow("slack", sn))
	}

	accounts, err := sc.GDriveClient().ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("gdrive: %w", err)
	}
	for _, sn := range accounts {
		rows = append(rows, newSourceRow("gdrive", sn))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Source", "ID", "Name", "Default", "Leaves", "Collecting"})
	for _, row := range rows {
		table.Append([]string{
			row.Source,
			row.ID,
			row.Name,
			strconv.FormatBool(row.Default),
			strconv.Itoa(row.Leaves),
			strconv.Itoa(row.Collecting),
		})
	}
	table.Render()

	return nil
}

func newSourceRow(source string, sn *scope.ScopeNode) sourceRow {
	row := sourceRow{
		Source:  source,
		ID:      sn.ID,
		Name:    sn.Name,
		Default: sn.CollectDefault,
		Leaves:  sn.Len(),
	}
	for _, leaf := range sn.Leaves() {
		if scope.EffectiveCollect(leaf, sn.CollectDefault) {
			row.Collecting++
		}
	}
	return row
}
