package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/factory"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "content-engine",
		Short:             "Semantic content engine: context analysis, writing style and document search",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading CONTENT_ENGINE_* variables")

	root.AddCommand(
		newMigrateCmd(a),
		newContextCmd(a),
		newStyleCmd(a),
		newDocsCmd(a),
		newOwnerCmd(a),
		newDoctorCmd(a),
	)
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the storage schema",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return map[string]string{"driver": a.cfg.DBDriver, "status": "ok"}, nil
		}),
	}
}

func newOwnerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "owner", Short: "Owner lifecycle"}

	var owner string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete every document, version and sample of an owner",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Owners.DeleteOwner(ctx, owner)
		}),
	}
	del.Flags().StringVar(&owner, "owner", "", "owner id")
	_ = del.MarkFlagRequired("owner")
	cmd.AddCommand(del)
	return cmd
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the store and the embedding provider are reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.getEngine(cmd.Context())
			if err != nil {
				return err
			}
			status, herr := eng.Doctor(cmd.Context(), a.cfg, a.log)
			if err := a.print(map[string]interface{}{
				"healthy":    herr == nil,
				"components": status,
				"driver":     a.cfg.DBDriver,
				"provider":   a.cfg.EmbedProvider,
			}); err != nil {
				return err
			}
			return herr
		},
	}
}
