package elevenlabs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListKnowledgeBase lists the workspace's knowledge base documents.
func (c *Client) ListKnowledgeBase(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/knowledge-base", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetKnowledgeBaseDocument fetches metadata for one document.
func (c *Client) GetKnowledgeBaseDocument(ctx context.Context, documentID string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/knowledge-base/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateKnowledgeBaseFromURL indexes the content behind url as a document.
func (c *Client) CreateKnowledgeBaseFromURL(ctx context.Context, name, docURL string) (map[string]any, error) {
	body := map[string]any{"name": name, "url": docURL}

	var out map[string]any
	if err := c.postJSON(ctx, "/v1/convai/knowledge-base/url", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateKnowledgeBaseFromText stores raw text as a document.
func (c *Client) CreateKnowledgeBaseFromText(ctx context.Context, name, text string) (map[string]any, error) {
	body := map[string]any{"name": name, "text": text}

	var out map[string]any
	if err := c.postJSON(ctx, "/v1/convai/knowledge-base/text", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateKnowledgeBaseFromFile uploads a file (epub, pdf, docx, txt, html)
// as a document.
func (c *Client) CreateKnowledgeBaseFromFile(ctx context.Context, name string, file UploadFile) (map[string]any, error) {
	fields := map[string]string{}
	if name != "" {
		fields["name"] = name
	}
	data, err := c.postMultipart(ctx, "/v1/convai/knowledge-base/file", "file", []UploadFile{file}, fields)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := decodeJSON("/v1/convai/knowledge-base/file", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateKnowledgeBaseDocument renames a document.
func (c *Client) UpdateKnowledgeBaseDocument(ctx context.Context, documentID, name string) (map[string]any, error) {
	body := map[string]any{"name": name}

	var out map[string]any
	if err := c.patchJSON(ctx, "/v1/convai/knowledge-base/"+url.PathEscape(documentID), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteKnowledgeBaseDocument removes a document from the workspace.
func (c *Client) DeleteKnowledgeBaseDocument(ctx context.Context, documentID string) error {
	return c.deleteJSON(ctx, "/v1/convai/knowledge-base/"+url.PathEscape(documentID), nil)
}

// KnowledgeBaseDocumentContent returns the full extracted content of a
// document.
func (c *Client) KnowledgeBaseDocumentContent(ctx context.Context, documentID string) (string, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/content", url.PathEscape(documentID))
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// KnowledgeBaseDocumentChunk fetches one chunk of a document.
func (c *Client) KnowledgeBaseDocumentChunk(ctx context.Context, documentID, chunkID string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/chunk/%s",
		url.PathEscape(documentID), url.PathEscape(chunkID))

	var out map[string]any
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DependentAgents lists the agents that reference a document.
func (c *Client) DependentAgents(ctx context.Context, documentID string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/dependent-agents", url.PathEscape(documentID))

	var out map[string]any
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// KnowledgeBaseSize reports the total size of the workspace's documents.
func (c *Client) KnowledgeBaseSize(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/knowledge-base/size", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComputeRAGIndex starts RAG index computation for a document with the
// given embedding model.
func (c *Client) ComputeRAGIndex(ctx context.Context, documentID, model string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/rag-index", url.PathEscape(documentID))
	body := map[string]any{"model": model}

	var out map[string]any
	if err := c.postJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RAGIndexes lists the RAG indexes of a document.
func (c *Client) RAGIndexes(ctx context.Context, documentID string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/rag-index", url.PathEscape(documentID))

	var out map[string]any
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RAGIndexOverview summarizes RAG index usage across the workspace.
func (c *Client) RAGIndexOverview(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v1/convai/knowledge-base/rag-index", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRAGIndex removes one RAG index from a document.
func (c *Client) DeleteRAGIndex(ctx context.Context, documentID, ragIndexID string) (map[string]any, error) {
	path := fmt.Sprintf("/v1/convai/knowledge-base/%s/rag-index/%s",
		url.PathEscape(documentID), url.PathEscape(ragIndexID))

	var out map[string]any
	if err := c.deleteJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
