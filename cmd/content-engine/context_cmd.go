package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/contextanalysis"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/factory"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/lexicon"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/services"
)

func newContextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "context", Short: "Analyze and version professional context"}

	var text, file, owner string
	textFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&text, "text", "", "content")
		c.Flags().StringVar(&file, "file", "", "read content from a file, - for stdin")
	}
	ownerFlag := func(c *cobra.Command) {
		c.Flags().StringVar(&owner, "owner", "", "owner id")
		_ = c.MarkFlagRequired("owner")
	}

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze text without saving it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := a.readText(text, file)
			if err != nil {
				return err
			}
			svc := services.NewContextService(nil, nil, contextanalysis.New(lexicon.Default()), a.log)
			res, err := svc.Analyze(content)
			if err != nil {
				return a.userError(err)
			}
			return a.print(res)
		},
	}
	textFlags(analyze)

	save := &cobra.Command{
		Use:   "save",
		Short: "Analyze text and store it as the owner's next context version",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.readText(text, file)
			if err != nil {
				return err
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Context.Save(ctx, owner, content)
			})(cmd, args)
		},
	}
	textFlags(save)
	ownerFlag(save)

	latest := &cobra.Command{
		Use:   "latest",
		Short: "Show the latest context snapshot",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Context.Latest(ctx, owner)
		}),
	}
	ownerFlag(latest)

	history := &cobra.Command{
		Use:   "history",
		Short: "List every context snapshot, oldest first",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Context.History(ctx, owner)
		}),
	}
	ownerFlag(history)

	insights := &cobra.Command{
		Use:   "insights",
		Short: "Derive strengths and suggestions from the latest snapshot",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Context.Insights(ctx, owner)
		}),
	}
	ownerFlag(insights)

	cmd.AddCommand(analyze, save, latest, history, insights)
	return cmd
}
