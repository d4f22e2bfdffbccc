package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/config"
	"github.com/caugraph/caugraph/pkg/graphio"
	"github.com/caugraph/caugraph/pkg/store"
)

// ===== Graphs Command =====

func (c *CLI) graphsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage stored graphs",
		Long:  `Saves, lists, exports, and deletes graphs in the configured store backend.`,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	cmd.AddCommand(c.graphsSaveCommand(&configPath))
	cmd.AddCommand(c.graphsListCommand(&configPath))
	cmd.AddCommand(c.graphsExportCommand(&configPath))
	cmd.AddCommand(c.graphsDeleteCommand(&configPath))
	return cmd
}

func openStore(ctx context.Context, configPath string) (store.Store, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Store.OpenStore(ctx)
}

func (c *CLI) graphsSaveCommand(configPath *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <graph.json>",
		Short: "Save a graph document to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			doc, err := graphio.ReadDocument(f)
			f.Close()
			if err != nil {
				return err
			}

			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			rec := store.NewRecord(name, doc)
			if err := st.Save(ctx, rec); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("saved graph %s", StyleHighlight.Render(rec.Name)))
			printKeyValue("id", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "graph name (default: input filename)")
	return cmd
}

func (c *CLI) graphsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			records, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("no graphs stored")
				return nil
			}
			for _, rec := range records {
				printInfo(fmt.Sprintf("%s %s", StyleHighlight.Render(rec.Name), StyleDim.Render(rec.ID)))
				printDetail(fmt.Sprintf("%s, %d nodes, %d edges, updated %s",
					rec.Document.Kind, len(rec.Document.Nodes), len(rec.Document.Edges),
					rec.UpdatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func (c *CLI) graphsExportCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a stored graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			w := os.Stdout
			if output != "" {
				if w, err = os.Create(output); err != nil {
					return err
				}
				defer w.Close()
			}
			if err := graphio.WriteDocument(rec.Document, w); err != nil {
				return err
			}
			if output != "" {
				printSuccess(fmt.Sprintf("exported graph %s", StyleHighlight.Render(rec.Name)))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *CLI) graphsDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("graph deleted")
			return nil
		},
	}
}
