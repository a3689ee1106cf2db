package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/factory"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

func newDocsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "docs", Short: "Store, retrieve and search documents"}

	var (
		id, owner, docType string
		storeType          string
		text, file, meta   string
		query              string
		limit              int
		threshold          float64
	)

	store := &cobra.Command{
		Use:   "store",
		Short: "Embed and store a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.readText(text, file)
			if err != nil {
				return err
			}
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Docs.Store(ctx, model.NewDocument{
					OwnerID:      owner,
					Content:      content,
					DocumentType: model.DocumentType(storeType),
					Metadata:     metadata,
				})
			})(cmd, args)
		},
	}
	store.Flags().StringVar(&owner, "owner", "", "owner id")
	store.Flags().StringVar(&storeType, "type", string(model.DocumentTypeContent), "document type")
	store.Flags().StringVar(&text, "text", "", "content")
	store.Flags().StringVar(&file, "file", "", "read content from a file, - for stdin")
	store.Flags().StringVar(&meta, "metadata", "", "metadata as a JSON object")
	_ = store.MarkFlagRequired("owner")

	get := &cobra.Command{
		Use:   "get",
		Short: "Fetch a document by id",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Docs.Get(ctx, id)
		}),
	}
	get.Flags().StringVar(&id, "id", "", "document id")
	_ = get.MarkFlagRequired("id")

	update := &cobra.Command{
		Use:   "update",
		Short: "Change a document's content or metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.DocumentPatch
			if text != "" || file != "" {
				content, err := a.readText(text, file)
				if err != nil {
					return err
				}
				patch.Content = &content
			}
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}
			patch.Metadata = metadata
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Docs.Update(ctx, id, patch)
			})(cmd, args)
		},
	}
	update.Flags().StringVar(&id, "id", "", "document id")
	update.Flags().StringVar(&text, "text", "", "new content")
	update.Flags().StringVar(&file, "file", "", "read new content from a file, - for stdin")
	update.Flags().StringVar(&meta, "metadata", "", "replacement metadata as a JSON object")
	_ = update.MarkFlagRequired("id")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a document; unknown ids report deleted=false",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			ok, err := eng.Docs.Delete(ctx, id)
			return map[string]interface{}{"id": id, "deleted": ok}, err
		}),
	}
	del.Flags().StringVar(&id, "id", "", "document id")
	_ = del.MarkFlagRequired("id")

	list := &cobra.Command{
		Use:   "list",
		Short: "List an owner's documents, newest first",
		RunE: a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
			return eng.Docs.ListByOwner(ctx, owner, model.DocumentType(docType), limit)
		}),
	}
	list.Flags().StringVar(&owner, "owner", "", "owner id")
	list.Flags().StringVar(&docType, "type", "", "only this document type")
	list.Flags().IntVar(&limit, "limit", 0, "maximum documents, 0 for all")
	_ = list.MarkFlagRequired("owner")

	search := &cobra.Command{
		Use:   "search",
		Short: "Rank stored documents by similarity to a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.SearchThreshold
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Docs.SimilaritySearch(ctx, model.SearchQuery{
					Query:        query,
					OwnerID:      owner,
					DocumentType: model.DocumentType(docType),
					Limit:        limit,
					Threshold:    threshold,
				})
			})(cmd, args)
		},
	}
	search.Flags().StringVarP(&query, "query", "q", "", "query text")
	search.Flags().StringVar(&owner, "owner", "", "only this owner's documents")
	search.Flags().StringVar(&docType, "type", "", "only this document type")
	search.Flags().IntVarP(&limit, "limit", "k", 0, "maximum results, 0 for the configured default")
	search.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity in [0,1], defaults to CONTENT_ENGINE_SEARCH_THRESHOLD")
	_ = search.MarkFlagRequired("query")

	similar := &cobra.Command{
		Use:   "similar",
		Short: "Find documents of the same owner similar to a stored document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.SearchThreshold
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Docs.FindSimilarDocuments(ctx, id, limit, threshold)
			})(cmd, args)
		},
	}
	similar.Flags().StringVar(&id, "id", "", "source document id")
	similar.Flags().IntVarP(&limit, "limit", "k", 0, "maximum results, 0 for the configured default")
	similar.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity in [0,1], defaults to CONTENT_ENGINE_SEARCH_THRESHOLD")
	_ = similar.MarkFlagRequired("id")

	batch := &cobra.Command{
		Use:   "batch",
		Short: "Store a JSON array of documents in order, stopping at the first failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.readText("", file)
			if err != nil {
				return err
			}
			var docs []model.NewDocument
			if err := json.Unmarshal([]byte(raw), &docs); err != nil {
				return model.NewValidationError("file", "must hold a JSON array of documents: "+err.Error())
			}
			return a.withEngine(func(ctx context.Context, eng *factory.Engine) (interface{}, error) {
				return eng.Docs.BatchStore(ctx, docs)
			})(cmd, args)
		},
	}
	batch.Flags().StringVar(&file, "file", "", "JSON file with an array of {ownerId, content, documentType, metadata}, - for stdin")
	_ = batch.MarkFlagRequired("file")

	cmd.AddCommand(store, get, update, del, list, search, similar, batch)
	return cmd
}

func parseMetadata(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, model.NewValidationError("metadata", "must be a JSON object")
	}
	return m, nil
}

