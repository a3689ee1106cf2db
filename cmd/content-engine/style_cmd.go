package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/factory"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/lexicon"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/services"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/styleanalysis"
)

func newStyleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "style", Short: "Writing style samples, profiles and comparison"}

	var (
		owner, text, file     string
		platform, contentType string
		texts                 []string
		ownerA, ownerB        string
	)

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a writing sample and recompute the owner's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.readText(text, file)
			if err != nil {
				return err
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Style.AddSample(ctx, services.NewSample{
					OwnerID:     owner,
					Content:     content,
					Platform:    platform,
					ContentType: contentType,
				})
			})(cmd, args)
		},
	}
	add.Flags().StringVar(&owner, "owner", "", "owner id")
	add.Flags().StringVar(&text, "text", "", "sample content")
	add.Flags().StringVar(&file, "file", "", "read the sample from a file, - for stdin")
	add.Flags().StringVar(&platform, "platform", "", "where the sample was published, e.g. linkedin")
	add.Flags().StringVar(&contentType, "content-type", "", "kind of content, e.g. post or article")
	_ = add.MarkFlagRequired("owner")

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Build a profile from ad-hoc samples without saving anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			samples := make([]model.StyleSample, 0, len(texts))
			for _, t := range texts {
				samples = append(samples, model.StyleSample{Content: t, Platform: platform, ContentType: contentType})
			}
			svc := services.NewStyleService(nil, nil, nil, styleanalysis.New(lexicon.Default()), a.log)
			p, err := svc.AnalyzeSamples(samples)
			if err != nil {
				return a.userError(err)
			}
			return a.print(p)
		},
	}
	analyze.Flags().StringArrayVar(&texts, "text", nil, "sample content, repeatable")
	analyze.Flags().StringVar(&platform, "platform", "", "platform applied to every sample")
	analyze.Flags().StringVar(&contentType, "content-type", "", "content type applied to every sample")

	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show the owner's latest style profile",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Style.Profile(ctx, owner)
		}),
	}
	profile.Flags().StringVar(&owner, "owner", "", "owner id")
	_ = profile.MarkFlagRequired("owner")

	samples := &cobra.Command{
		Use:   "samples",
		Short: "List the owner's writing samples",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Style.Samples(ctx, owner)
		}),
	}
	samples.Flags().StringVar(&owner, "owner", "", "owner id")
	_ = samples.MarkFlagRequired("owner")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Compare the latest profiles of two owners",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Style.CompareOwners(ctx, ownerA, ownerB)
		}),
	}
	compare.Flags().StringVar(&ownerA, "owner-a", "", "reference owner")
	compare.Flags().StringVar(&ownerB, "owner-b", "", "owner compared against the reference")
	_ = compare.MarkFlagRequired("owner-a")
	_ = compare.MarkFlagRequired("owner-b")

	cmd.AddCommand(add, analyze, profile, samples, compare)
	return cmd
}
