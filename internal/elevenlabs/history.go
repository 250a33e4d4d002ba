package elevenlabs

import (
	"context"
	"net/url"
	"strconv"
)

// GetHistory lists generated-audio records, newest first.
func (c *Client) GetHistory(ctx context.Context, pageSize int, voiceID, startAfter string) (*HistoryPage, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if voiceID != "" {
		query.Set("voice_id", voiceID)
	}
	if startAfter != "" {
		query.Set("start_after_history_item_id", startAfter)
	}

	var out HistoryPage
	if err := c.getJSON(ctx, "/v1/history", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistoryItem fetches one history record's metadata.
func (c *Client) GetHistoryItem(ctx context.Context, historyItemID string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/history/"+url.PathEscape(historyItemID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteHistoryItem removes one history record.
func (c *Client) DeleteHistoryItem(ctx context.Context, historyItemID string) error {
	return c.deleteJSON(ctx, "/v1/history/"+url.PathEscape(historyItemID), nil)
}
