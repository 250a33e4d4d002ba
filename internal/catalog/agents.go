package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

func (c *Catalog) registerAgents(r *registry.Registry) {
	min0, max1 := unit()

	r.Register(&registry.Descriptor{
		ID:          "create_agent",
		Description: "Create a conversational AI agent",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "name", Description: "Agent name", Type: registry.TypeString, Required: true},
			{Name: "system_prompt", Description: "System prompt guiding the agent", Type: registry.TypeString, Required: true},
			{Name: "first_message", Description: "Message the agent opens with", Type: registry.TypeString},
			{Name: "voice_id", Description: "Voice the agent speaks with", Type: registry.TypeString},
			{Name: "language", Description: "ISO 639-1 language code", Type: registry.TypeString, Default: "en"},
			{Name: "llm", Description: "Language model backing the agent", Type: registry.TypeString, Default: "gemini-2.0-flash-001"},
			{Name: "temperature", Description: "LLM sampling temperature", Type: registry.TypeNumber, Default: 0.5, Minimum: min0, Maximum: max1},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.CreateAgent(ctx, elevenlabs.AgentConfig{
				Name:         args.String("name"),
				SystemPrompt: args.String("system_prompt"),
				FirstMessage: args.String("first_message"),
				VoiceID:      args.String("voice_id"),
				Language:     args.String("language"),
				LLM:          args.String("llm"),
				Temperature:  args.Float("temperature"),
			})
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "list_agents",
		Description: "List the agents in your account",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListAgents(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_agent",
		Description: "Get details of a single agent",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "agent_id", Description: "Agent ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetAgent(ctx, args.String("agent_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "duplicate_agent",
		Description: "Duplicate an existing agent",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "agent_id", Description: "Agent ID to duplicate", Type: registry.TypeString, Required: true},
			{Name: "name", Description: "Name for the duplicate", Type: registry.TypeString},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.DuplicateAgent(ctx, args.String("agent_id"), args.String("name"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_agent_link",
		Description: "Get the shareable conversation link of an agent",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "agent_id", Description: "Agent ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.AgentLink(ctx, args.String("agent_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "list_conversations",
		Description: "List agent conversations",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "agent_id", Description: "Restrict to one agent", Type: registry.TypeString},
			{Name: "page_size", Description: "Results per page", Type: registry.TypeInteger, Default: 30, Minimum: registry.Ptr(1), Maximum: registry.Ptr(100)},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListConversations(ctx, args.String("agent_id"), args.Int("page_size"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_conversation",
		Description: "Get an agent conversation transcript",
		ResultShape: registry.ShapeText,
		CostClass:   registry.CostFree,
		FilePrefix:  "conversation",
		FileExt:     "txt",
		Params: []registry.ParamSpec{
			{Name: "conversation_id", Description: "Conversation ID", Type: registry.TypeString, Required: true},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			conv, err := c.client.GetConversation(ctx, args.String("conversation_id"))
			if err != nil {
				return nil, err
			}
			return formatTranscript(conv), nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "delete_conversation",
		Description: "Delete an agent conversation",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "conversation_id", Description: "Conversation ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			id := args.String("conversation_id")
			if err := c.client.DeleteConversation(ctx, id); err != nil {
				return nil, err
			}
			return map[string]any{"status": "deleted", "conversation_id": id}, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "list_phone_numbers",
		Description: "List the phone numbers attached to your account",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListPhoneNumbers(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "make_outbound_call",
		Description: "Place an outbound call with an agent via Twilio",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "agent_id", Description: "Agent that will handle the call", Type: registry.TypeString, Required: true},
			{Name: "agent_phone_number_id", Description: "Phone number ID to call from", Type: registry.TypeString, Required: true},
			{Name: "to_number", Description: "Destination number in E.164 format", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.OutboundCall(ctx,
				args.String("agent_id"), args.String("agent_phone_number_id"), args.String("to_number"))
		},
	})
}

// formatTranscript renders a conversation as role-prefixed lines, with the
// status on the first line.
func formatTranscript(conv *elevenlabs.Conversation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conversation %s (agent %s, status %s)\n", conv.ConversationID, conv.AgentID, conv.Status)
	for _, entry := range conv.Transcript {
		fmt.Fprintf(&b, "%s: %s\n", entry.Role, entry.Message)
	}
	return b.String()
}
