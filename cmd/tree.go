package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/scopeboard/scopeboard/internal/gdrive"
	"github.com/scopeboard/scopeboard/internal/pathtree"
	"github.com/scopeboard/scopeboard/internal/server"
)

func newTreeCmd() *cobra.Command {
	var (
		source           string
		driveCredentials string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render a source's folder hierarchy as a tree",
		Long: `Render a nested folder tree built from slash-delimited paths.

Sources:
  notes  - synced note paths from the gateway (default)
  gdrive - the folder hierarchy of a Drive account, listed straight from
           the Drive API (requires credentials)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch source {
			case "notes":
				return runNotesTree(cmd.Context())
			case "gdrive":
				return runDriveTree(cmd.Context(), driveCredentials)
			default:
				return fmt.Errorf("unsupported source %q (supported: notes, gdrive)", source)
			}
		},
	}

	cmd.Flags().StringVar(&source, "source", "notes", "Source to render: notes or gdrive")
	cmd.Flags().StringVar(&driveCredentials, "drive-credentials", "", "Path to Google service account or OAuth credentials JSON (gdrive source only). Can also use GOOGLE_APPLICATION_CREDENTIALS env var.")

	return cmd
}

func runNotesTree(ctx context.Context) error {
	sc, err := server.NewServerContext(ctx, server.Config{
		GatewayURL:   viper.GetString("gateway.url"),
		GatewayToken: viper.GetString("gateway.token"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = sc.Shutdown() }()

	tree, err := sc.NotesClient().Tree(ctx)
	if err != nil {
		return err
	}

	printTree(tree, "")
	return nil
}

func runDriveTree(ctx context.Context, credentials string) error {
	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	picker, err := gdrive.NewPicker(ctx, opts...)
	if err != nil {
		return err
	}

	paths, err := picker.FolderPaths(ctx)
	if err != nil {
		return err
	}

	// Drive paths name folders all the way down; a trailing slash makes the
	// last segment a folder rather than a file.
	for i, p := range paths {
		paths[i] = p + "/"
	}
	printTree(pathtree.Build(paths), "")
	return nil
}

var (
	folderColor = color.New(color.FgBlue, color.Bold).SprintFunc()
	fileColor   = color.New(color.FgWhite).SprintFunc()
)

// printTree writes one line per entry to stdout, two spaces of indent per
// level, folders before files, both sorted.
func printTree(t *pathtree.Tree, indent string) {
	for _, name := range t.SortedFolders() {
		fmt.Fprintf(os.Stdout, "%s%s/\n", indent, folderColor(name))
		printTree(t.Folders[name], indent+"  ")
	}
	for _, name := range t.SortedFiles() {
		if name == "" {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s%s\n", indent, fileColor(name))
	}
}
