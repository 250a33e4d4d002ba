package elevenlabs

import (
	"context"
	"fmt"
	"net/url"
)

// ListPronunciationDictionaries lists the account's pronunciation
// dictionaries.
func (c *Client) ListPronunciationDictionaries(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/pronunciation-dictionaries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPronunciationDictionary fetches one dictionary's metadata.
func (c *Client) GetPronunciationDictionary(ctx context.Context, dictionaryID string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/pronunciation-dictionaries/"+url.PathEscape(dictionaryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePronunciationDictionary creates a dictionary from a rule list. Each
// rule is a vendor rule object (alias or phoneme form).
func (c *Client) CreatePronunciationDictionary(ctx context.Context, name, description string, rules []map[string]any) (map[string]any, error) {
	body := map[string]any{
		"name":  name,
		"rules": rules,
	}
	if description != "" {
		body["description"] = description
	}

	var out map[string]any
	if err := c.postJSON(ctx, "/v1/pronunciation-dictionaries/add-from-rules", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPronunciationRules appends rules to an existing dictionary.
func (c *Client) AddPronunciationRules(ctx context.Context, dictionaryID string, rules []map[string]any) (map[string]any, error) {
	path := fmt.Sprintf("/v1/pronunciation-dictionaries/%s/add-rules", url.PathEscape(dictionaryID))
	body := map[string]any{"rules": rules}

	var out map[string]any
	if err := c.postJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemovePronunciationRules removes rules by their grapheme strings.
func (c *Client) RemovePronunciationRules(ctx context.Context, dictionaryID string, ruleStrings []string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/pronunciation-dictionaries/%s/remove-rules", url.PathEscape(dictionaryID))
	body := map[string]any{"rule_strings": ruleStrings}

	var out map[string]any
	if err := c.postJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
