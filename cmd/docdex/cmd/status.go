package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/store"
)

func newStatusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status [folder]",
		Short: "Show checkpoint statistics for a folder",
		Long: `Report the persisted checkpoint state: document and token counts and
the checkpoint file locations.

With --check, the checkpoint invariants are verified: no token may have
an empty posting set and no posting may reference a document missing
from the manifest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}

			cfg, err := config.Load(folder)
			if err != nil {
				return err
			}

			st := store.New(cfg.ResolveDataDir(folder))
			out := cmd.OutOrStdout()

			ix, found, err := st.LoadIndex()
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(out, "No index checkpoint at %s\n", st.IndexPath())
				return nil
			}

			manifest, err := st.LoadManifest()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Index:    %s\n", st.IndexPath())
			fmt.Fprintf(out, "Manifest: %s\n", st.ManifestPath())
			fmt.Fprintf(out, "Documents: %d\n", len(manifest))
			fmt.Fprintf(out, "Tokens:    %d\n", ix.TokenCount())

			if !check {
				return nil
			}

			issues := index.CheckConsistency(ix, manifest)
			if len(issues) == 0 {
				fmt.Fprintln(out, "Consistency: OK")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(out, "Inconsistency (%s): token %q: %s\n",
					issue.Type, issue.Token, issue.Details)
			}
			return fmt.Errorf("checkpoint has %d inconsistencies", len(issues))
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify checkpoint invariants")

	return cmd
}
