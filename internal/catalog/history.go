package catalog

import (
	"context"
	"fmt"

	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

func (c *Catalog) registerHistory(r *registry.Registry) {
	r.Register(&registry.Descriptor{
		ID:          "get_history",
		Description: "List your generation history",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "page_size", Description: "Records per page", Type: registry.TypeInteger, Default: 100, Minimum: registry.Ptr(1), Maximum: registry.Ptr(1000)},
			{Name: "voice_id", Description: "Restrict to one voice", Type: registry.TypeString},
			{Name: "start_after_history_item_id", Description: "Resume after this record", Type: registry.TypeString},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetHistory(ctx,
				args.Int("page_size"), args.String("voice_id"), args.String("start_after_history_item_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_history_item",
		Description: "Get details of a generation history item",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "history_item_id", Description: "History item ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetHistoryItem(ctx, args.String("history_item_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "delete_history_item",
		Description: "Delete a generation history item",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "history_item_id", Description: "History item ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			id := args.String("history_item_id")
			if err := c.client.DeleteHistoryItem(ctx, id); err != nil {
				return nil, err
			}
			return map[string]any{"status": "deleted", "history_item_id": id}, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "download_history_items",
		Description: "Download the audio of recent generation history items",
		ResultShape: registry.ShapeResourceList,
		CostClass:   registry.CostFree,
		FilePrefix:  "history",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "page_size", Description: "Number of items to download", Type: registry.TypeInteger, Default: 10, Minimum: registry.Ptr(1), Maximum: registry.Ptr(100)},
			{Name: "voice_id", Description: "Restrict to one voice", Type: registry.TypeString},
			{Name: "start_after_history_item_id", Description: "Resume after this record", Type: registry.TypeString},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			page, err := c.client.GetHistory(ctx,
				args.Int("page_size"), args.String("voice_id"), args.String("start_after_history_item_id"))
			if err != nil {
				return nil, err
			}
			items := make([]registry.ListItem, 0, len(page.History))
			for _, h := range page.History {
				audio, err := c.client.HistoryItemAudio(ctx, h.HistoryItemID)
				if err != nil {
					return nil, fmt.Errorf("downloading history item %s: %w", h.HistoryItemID, err)
				}
				mime := h.ContentType
				if mime == "" {
					mime = "audio/mpeg"
				}
				items = append(items, registry.ListItem{Name: h.HistoryItemID, Data: audio, Mime: mime})
			}
			return items, nil
		},
	})
}
