package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

func (c *Catalog) registerKnowledge(r *registry.Registry) {
	r.Register(&registry.Descriptor{
		ID:          "list_knowledge_base_documents",
		Description: "List the knowledge base documents in your workspace",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListKnowledgeBase(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_knowledge_base_document",
		Description: "Get metadata of a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetKnowledgeBaseDocument(ctx, args.String("document_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "create_knowledge_base_from_url",
		Description: "Index the content behind a URL as a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "name", Description: "Document name", Type: registry.TypeString, Required: true},
			{Name: "url", Description: "URL to index", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.CreateKnowledgeBaseFromURL(ctx, args.String("name"), args.String("url"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "create_knowledge_base_from_text",
		Description: "Store raw text as a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "name", Description: "Document name", Type: registry.TypeString, Required: true},
			{Name: "text", Description: "Document text", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.CreateKnowledgeBaseFromText(ctx, args.String("name"), args.String("text"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "create_knowledge_base_from_file",
		Description: "Upload a local file (epub, pdf, docx, txt, html) as a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "input_file_path", Description: "Absolute path of the file to upload", Type: registry.TypeString, Required: true},
			{Name: "name", Description: "Document name, defaults to the file name", Type: registry.TypeString},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			filename, data, err := readInputFile("create_knowledge_base_from_file", args.String("input_file_path"))
			if err != nil {
				return nil, err
			}
			return c.client.CreateKnowledgeBaseFromFile(ctx, args.String("name"),
				elevenlabs.UploadFile{Name: filename, Data: data})
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "update_knowledge_base_document",
		Description: "Rename a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
			{Name: "name", Description: "New document name", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.UpdateKnowledgeBaseDocument(ctx, args.String("document_id"), args.String("name"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "delete_knowledge_base_document",
		Description: "Delete a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			id := args.String("document_id")
			if err := c.client.DeleteKnowledgeBaseDocument(ctx, id); err != nil {
				return nil, err
			}
			return map[string]any{"status": "deleted", "document_id": id}, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_document_content",
		Description: "Get the full extracted content of a knowledge base document",
		ResultShape: registry.ShapeText,
		CostClass:   registry.CostFree,
		FilePrefix:  "kb_content",
		FileExt:     "txt",
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.KnowledgeBaseDocumentContent(ctx, args.String("document_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_document_chunk",
		Description: "Get one chunk of a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
			{Name: "chunk_id", Description: "Chunk ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.KnowledgeBaseDocumentChunk(ctx, args.String("document_id"), args.String("chunk_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_document_dependent_agents",
		Description: "List the agents that reference a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.DependentAgents(ctx, args.String("document_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_knowledge_base_size",
		Description: "Get the total size of your knowledge base documents",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.KnowledgeBaseSize(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "compute_rag_index",
		Description: "Compute a RAG index for a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
			{Name: "model", Description: "Embedding model", Type: registry.TypeString,
				Default: "e5_mistral_7b_instruct",
				Enum:    []string{"e5_mistral_7b_instruct", "multilingual_e5_large_instruct"}},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ComputeRAGIndex(ctx, args.String("document_id"), args.String("model"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_rag_index",
		Description: "List the RAG indexes of a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.RAGIndexes(ctx, args.String("document_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_rag_index_overview",
		Description: "Summarize RAG index usage across the workspace",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.RAGIndexOverview(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "delete_rag_index",
		Description: "Delete a RAG index from a knowledge base document",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "document_id", Description: "Document ID", Type: registry.TypeString, Required: true},
			{Name: "rag_index_id", Description: "RAG index ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.DeleteRAGIndex(ctx, args.String("document_id"), args.String("rag_index_id"))
		},
	})
}

func (c *Catalog) registerPronunciation(r *registry.Registry) {
	r.Register(&registry.Descriptor{
		ID:          "list_pronunciation_dictionaries",
		Description: "List your pronunciation dictionaries",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ListPronunciationDictionaries(ctx)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_pronunciation_dictionary",
		Description: "Get details of a pronunciation dictionary",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "dictionary_id", Description: "Dictionary ID", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.GetPronunciationDictionary(ctx, args.String("dictionary_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "create_pronunciation_dictionary_from_rules",
		Description: "Create a pronunciation dictionary from a JSON rule list",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostMetered,
		Params: []registry.ParamSpec{
			{Name: "name", Description: "Dictionary name", Type: registry.TypeString, Required: true},
			{Name: "rules", Description: `Rules as a JSON array, e.g. [{"string_to_replace":"a","type":"alias","alias":"b"}]`, Type: registry.TypeString, Required: true},
			{Name: "description", Description: "Dictionary description", Type: registry.TypeString},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			rules, err := parseRules("create_pronunciation_dictionary_from_rules", args.String("rules"))
			if err != nil {
				return nil, err
			}
			return c.client.CreatePronunciationDictionary(ctx,
				args.String("name"), args.String("description"), rules)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "add_pronunciation_rules",
		Description: "Add rules to a pronunciation dictionary",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "dictionary_id", Description: "Dictionary ID", Type: registry.TypeString, Required: true},
			{Name: "rules", Description: "Rules as a JSON array", Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			rules, err := parseRules("add_pronunciation_rules", args.String("rules"))
			if err != nil {
				return nil, err
			}
			return c.client.AddPronunciationRules(ctx, args.String("dictionary_id"), rules)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "remove_pronunciation_rules",
		Description: "Remove rules from a pronunciation dictionary by their strings",
		ResultShape: registry.ShapeStructured,
		CostClass:   registry.CostFree,
		Params: []registry.ParamSpec{
			{Name: "dictionary_id", Description: "Dictionary ID", Type: registry.TypeString, Required: true},
			{Name: "rule_strings", Description: `Strings to remove as a JSON array, e.g. ["word"]`, Type: registry.TypeString, Required: true},
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			var strs []string
			if err := json.Unmarshal([]byte(args.String("rule_strings")), &strs); err != nil {
				return nil, &registry.InvalidParameterError{
					Op: "remove_pronunciation_rules", Field: "rule_strings",
					Constraint: fmt.Sprintf("must be a JSON array of strings: %v", err),
				}
			}
			return c.client.RemovePronunciationRules(ctx, args.String("dictionary_id"), strs)
		},
	})
}

// parseRules decodes a caller-supplied JSON rule list. Rule objects are
// passed to the vendor as-is.
func parseRules(op, raw string) ([]map[string]any, error) {
	var rules []map[string]any
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, &registry.InvalidParameterError{
			Op: op, Field: "rules",
			Constraint: fmt.Sprintf("must be a JSON array of rule objects: %v", err),
		}
	}
	return rules, nil
}
