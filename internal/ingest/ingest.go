// Package ingest turns markdown files into document chunks ready for
// embedding: frontmatter stripped, markdown rendered to plain text, text
// packed into token-bounded chunks.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

var frontmatterRe = regexp.MustCompile(`(?s)^---\s*\n.*?\n---\s*\n`)

// LoadDirectory reads every .md file under dir and returns its chunks.
// A file that fails to process is logged and skipped.
func LoadDirectory(ctx context.Context, dir string, cfg ChunkerConfig) ([]core.DocumentChunk, error) {
	logger := log.FromCtx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var all []core.DocumentChunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		chunks, err := ProcessFile(path, cfg)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("failed to process markdown file")
			continue
		}
		logger.Info().Str("file", path).Int("chunks", len(chunks)).Msg("processed markdown file")
		all = append(all, chunks...)
	}

	return all, nil
}

// ProcessFile chunks one markdown file into DocumentChunks with
// provenance metadata.
func ProcessFile(path string, cfg ChunkerConfig) ([]core.DocumentChunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), ".md")
	text := markdownToText(stripFrontmatter(content))
	chunks := ChunkText(text, cfg)

	docs := make([]core.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, core.DocumentChunk{
			ID:      fmt.Sprintf("%s_chunk_%d", name, chunk.Index),
			Content: chunk.Text,
			Source:  name,
			Metadata: map[string]any{
				"chunkIndex":  chunk.Index,
				"totalChunks": len(chunks),
				"filePath":    path,
				"tokens":      chunk.Tokens,
			},
		})
	}
	return docs, nil
}

// stripFrontmatter removes a leading YAML frontmatter block, if any.
func stripFrontmatter(content []byte) []byte {
	return frontmatterRe.ReplaceAll(content, nil)
}

// markdownToText flattens a markdown document to plain text, keeping
// paragraph boundaries so the chunker can respect them.
func markdownToText(md []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse(md, p)

	var sb strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Text:
			if entering {
				sb.Write(n.Literal)
			}
		case *ast.Code:
			if entering {
				sb.Write(n.Literal)
			}
		case *ast.CodeBlock:
			if entering {
				sb.Write(n.Literal)
				sb.WriteString("\n")
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TableRow:
			if !entering {
				sb.WriteString("\n\n")
			}
		}
		return ast.GoToNext
	})

	return strings.TrimSpace(sb.String())
}
