package catalog

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

func (c *Catalog) registerVoices(r *registry.Registry) {
	r.Register(&registry.Descriptor{
		ID:          "search_voices",
		Description: "Search the voices in your account",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "search", Description: "Term to match against voice names and labels", Type: registry.TypeString},
			{Name: "sort", Description: "Sort order", Type: registry.TypeString, Default: "name", Enum: []string{"name", "created_at_unix"}},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.SearchVoices(ctx, args.String("search"), args.String("sort"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "search_voice_library",
		Description: "Search the shared voice library",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "search", Description: "Term to match against library voices", Type: registry.TypeString},
			{Name: "page", Description: "Zero-based result page", Type: registry.TypeInteger, Default: 0, Minimum: registry.Ptr(0)},
			{Name: "page_size", Description: "Results per page", Type: registry.TypeInteger, Default: 10, Minimum: registry.Ptr(1), Maximum: registry.Ptr(100)},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.SearchVoiceLibrary(ctx, args.String("search"), args.Int("page"), args.Int("page_size"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_voice",
		Description: "Get details of a single voice",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "voice_id", Description: "Voice ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetVoice(ctx, args.String("voice_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "delete_voice",
		Description: "Delete a voice from your account",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "voice_id", Description: "Voice ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			id := args.String("voice_id")
			if err := c.client.DeleteVoice(ctx, id); err != nil {
				return nil, err
			}
			return map[string]any{"status": "deleted", "voice_id": id}, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_voice_settings",
		Description: "Get the synthesis settings of a voice",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "voice_id", Description: "Voice ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetVoiceSettings(ctx, args.String("voice_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_default_voice_settings",
		Description: "Get the account-wide default synthesis settings",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.DefaultVoiceSettings(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "voice_clone",
		Description: "Create an instant voice clone from a sample recording",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "name", Description: "Name for the cloned voice", Type: registry.TypeString, Required: true},
			{Name: "input_file_path", Description: "Absolute path of the sample audio file", Type: registry.TypeString, Required: true},
			{Name: "description", Description: "Description of the voice", Type: registry.TypeString},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			name, data, err := readInputFile("voice_clone", args.String("input_file_path"))
			if err != nil {
				return nil, err
			}
			files := []elevenlabs.UploadFile{{Name: name, Data: data}}
			return c.client.CloneVoice(ctx, args.String("name"), args.String("description"), files)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "text_to_voice",
		Description: "Design new voices from a description, returning audio previews",
		ResultShape: registry.ShapeResourceList,
		CostClass:   registry.CostMetered,
		FilePrefix:  "voice_design",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "voice_description", Description: "Description of the voice to design", Type: registry.TypeString, Required: true},
			{Name: "text", Description: "Preview text to speak; auto-generated when omitted", Type: registry.TypeString},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			previews, err := c.client.TextToVoice(ctx, args.String("voice_description"), args.String("text"))
			if err != nil {
				return nil, err
			}
			items := make([]registry.ListItem, 0, len(previews.Previews))
			for _, p := range previews.Previews {
				audio, err := base64.StdEncoding.DecodeString(p.AudioBase64)
				if err != nil {
					return nil, fmt.Errorf("decoding preview %s: %w", p.GeneratedVoiceID, err)
				}
				mime := p.MediaType
				if mime == "" {
					mime = "audio/mpeg"
				}
				items = append(items, registry.ListItem{
					Name: p.GeneratedVoiceID,
					Data: audio,
					Mime: mime,
				})
			}
			return items, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "create_voice_from_preview",
		Description: "Save a designed voice preview as a permanent voice",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "generated_voice_id", Description: "Preview ID from text_to_voice", Type: registry.TypeString, Required: true},
			{Name: "voice_name", Description: "Name for the new voice", Type: registry.TypeString, Required: true},
			{Name: "voice_description", Description: "Description of the new voice", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.CreateVoiceFromPreview(ctx,
				args.String("generated_voice_id"), args.String("voice_name"), args.String("voice_description"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "list_models",
		Description: "List the available synthesis models",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListModels(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "check_subscription",
		Description: "Check your subscription status and quota",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.Subscription(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_user_info",
		Description: "Get details of the authenticated account",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.User(ctx)
		},
	})
}
