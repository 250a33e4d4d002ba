package elevenlabs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AgentConfig is the conversational agent configuration accepted by
// CreateAgent. Only the commonly tuned knobs are modeled; the vendor applies
// its own defaults for the rest.
type AgentConfig struct {
	Name         string
	FirstMessage string
	SystemPrompt string
	VoiceID      string
	Language     string
	LLM          string
	Temperature  float64
}

// conversationConfig builds the vendor's nested agent configuration shape.
func (a AgentConfig) conversationConfig() map[string]any {
	agent := map[string]any{
		"language": a.Language,
		"prompt": map[string]any{
			"prompt":      a.SystemPrompt,
			"llm":         a.LLM,
			"temperature": a.Temperature,
		},
	}
	if a.FirstMessage != "" {
		agent["first_message"] = a.FirstMessage
	}

	cfg := map[string]any{"agent": agent}
	if a.VoiceID != "" {
		cfg["tts"] = map[string]any{"voice_id": a.VoiceID}
	}
	return cfg
}

// CreateAgent creates a conversational AI agent.
func (c *Client) CreateAgent(ctx context.Context, cfg AgentConfig) (*Agent, error) {
	body := map[string]any{
		"name":                cfg.Name,
		"conversation_config": cfg.conversationConfig(),
	}

	var out Agent
	if err := c.postJSON(ctx, "/v1/convai/agents/create", body, &out); err != nil {
		return nil, err
	}
	// The create endpoint only returns the new ID.
	if out.Name == "" {
		out.Name = cfg.Name
	}
	return &out, nil
}

// ListAgents lists the account's conversational agents.
func (c *Client) ListAgents(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/agents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAgent fetches one agent's configuration.
func (c *Client) GetAgent(ctx context.Context, agentID string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/agents/"+url.PathEscape(agentID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DuplicateAgent copies an existing agent, optionally under a new name.
func (c *Client) DuplicateAgent(ctx context.Context, agentID, name string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/agents/%s/duplicate", url.PathEscape(agentID))
	var body map[string]any
	if name != "" {
		body = map[string]any{"name": name}
	}

	var out map[string]any
	if err := c.postJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AgentLink fetches the shareable link of an agent.
func (c *Client) AgentLink(ctx context.Context, agentID string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/agents/%s/link", url.PathEscape(agentID))
	var out map[string]any
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListConversations lists agent conversations, optionally filtered by agent.
func (c *Client) ListConversations(ctx context.Context, agentID string, pageSize int) (map[string]any, error) {
	query := url.Values{}
	if agentID != "" {
		query.Set("agent_id", agentID)
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/conversations", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConversation fetches one conversation including its transcript.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	var out Conversation
	if err := c.getJSON(ctx, "/v1/convai/conversations/"+url.PathEscape(conversationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConversation removes a conversation record.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	return c.deleteJSON(ctx, "/v1/convai/conversations/"+url.PathEscape(conversationID), nil)
}

// ListPhoneNumbers lists the phone numbers attached to the workspace.
func (c *Client) ListPhoneNumbers(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.getJSON(ctx, "/v1/convai/phone-numbers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OutboundCall starts an outbound agent call through Twilio.
func (c *Client) OutboundCall(ctx context.Context, agentID, phoneNumberID, toNumber string) (map[string]any, error) {
	body := map[string]any{
		"agent_id":              agentID,
		"agent_phone_number_id": phoneNumberID,
		"to_number":             toNumber,
	}

	var out map[string]any
	if err := c.postJSON(ctx, "/v1/convai/twilio/outbound-call", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
