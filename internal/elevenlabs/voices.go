package elevenlabs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchVoices lists the account's voices, optionally filtered by a search
// term matching name, description or labels.
func (c *Client) SearchVoices(ctx context.Context, search, sort string) (*VoicesPage, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if sort != "" {
		query.Set("sort", sort)
	}

	var out VoicesPage
	if err := c.getJSON(ctx, "/v2/voices", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVoice fetches full metadata for one voice.
func (c *Client) GetVoice(ctx context.Context, voiceID string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/voices/"+url.PathEscape(voiceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVoice removes a voice from the account.
func (c *Client) DeleteVoice(ctx context.Context, voiceID string) error {
	return c.deleteJSON(ctx, "/v1/voices/"+url.PathEscape(voiceID), nil)
}

// GetVoiceSettings fetches the stored settings of one voice.
func (c *Client) GetVoiceSettings(ctx context.Context, voiceID string) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/v1/voices/%s/settings", url.PathEscape(voiceID))
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultVoiceSettings fetches the account-wide default voice settings.
func (c *Client) DefaultVoiceSettings(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/voices/settings/default", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloneVoice creates an instant voice clone from sample recordings.
func (c *Client) CloneVoice(ctx context.Context, name, description string, files []UploadFile) (map[string]any, error) {
	fields := map[string]string{"name": name}
	if description != "" {
		fields["description"] = description
	}

	data, err := c.postMultipart(ctx, "/v1/voices/add", "files", files, fields)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := decodeJSON("/v1/voices/add", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchVoiceLibrary searches the shared voice library.
func (c *Client) SearchVoiceLibrary(ctx context.Context, search string, page, pageSize int) (map[string]any, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var out map[string]any
	if err := c.getJSON(ctx, "/v1/shared-voices", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TextToVoice designs new voices from a description, returning audio previews.
func (c *Client) TextToVoice(ctx context.Context, voiceDescription, text string) (*VoicePreviews, error) {
	body := map[string]any{
		"voice_description":  voiceDescription,
		"auto_generate_text": text == "",
	}
	if text != "" {
		body["text"] = text
	}

	var out VoicePreviews
	if err := c.postJSON(ctx, "/v1/text-to-voice/create-previews", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVoiceFromPreview saves a generated preview as a permanent voice.
func (c *Client) CreateVoiceFromPreview(ctx context.Context, generatedVoiceID, name, description string) (map[string]any, error) {
	body := map[string]any{
		"voice_name":         name,
		"voice_description":  description,
		"generated_voice_id": generatedVoiceID,
	}

	var out map[string]any
	if err := c.postJSON(ctx, "/v1/text-to-voice/create-voice-from-preview", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListModels lists the available synthesis models.
func (c *Client) ListModels(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.getJSON(ctx, "/v1/models", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscription fetches the account's subscription status.
func (c *Client) Subscription(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/user/subscription", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// User fetches account information.
func (c *Client) User(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
