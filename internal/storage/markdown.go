// ABOUTME: File-based document backend storing one markdown file per document.
// ABOUTME: Metadata lives in YAML frontmatter; the body is a fenced JSON block.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
	"gopkg.in/yaml.v3"
)

// MarkdownStore keeps documents as <dataDir>/<owner>/<kind>.md.
type MarkdownStore struct {
	dataDir string
	md      goldmark.Markdown
}

// Compile-time check that MarkdownStore implements Backend.
var _ Backend = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{
		dataDir: dataDir,
		md:      goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{})),
	}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) docPath(owner string, kind Kind) string {
	return filepath.Join(s.dataDir, owner, string(kind)+".md")
}

// docFrontmatter holds the YAML frontmatter of a document file.
type docFrontmatter struct {
	Owner     string `yaml:"owner"`
	Kind      string `yaml:"kind"`
	UpdatedAt string `yaml:"updated_at"`
}

// GetDocument reads one document file.
func (s *MarkdownStore) GetDocument(owner string, kind Kind) (*Document, error) {
	if err := validateKey(owner, kind); err != nil {
		return nil, err
	}
	doc, err := s.readFile(s.docPath(owner, kind))
	if errors.Is(err, os.ErrNotExist) {
		return nil, notFound(owner, kind)
	}
	return doc, err
}

// PutDocument writes a document file atomically.
func (s *MarkdownStore) PutDocument(doc *Document) error {
	if err := validateKey(doc.Owner, doc.Kind); err != nil {
		return err
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}

	content, err := renderDocument(doc)
	if err != nil {
		return fmt.Errorf("render document file: %w", err)
	}
	return atomicWrite(s.docPath(doc.Owner, doc.Kind), content)
}

// DeleteDocument removes a document file.
func (s *MarkdownStore) DeleteDocument(owner string, kind Kind) error {
	if err := validateKey(owner, kind); err != nil {
		return err
	}
	err := os.Remove(s.docPath(owner, kind))
	if errors.Is(err, os.ErrNotExist) {
		return notFound(owner, kind)
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// ListDocuments reads every document file of owner, or of all owners.
func (s *MarkdownStore) ListDocuments(owner string) ([]*Document, error) {
	owners := []string{owner}
	if owner == "" {
		entries, err := os.ReadDir(s.dataDir)
		if err != nil {
			return nil, fmt.Errorf("read data directory: %w", err)
		}
		owners = owners[:0]
		for _, e := range entries {
			if e.IsDir() {
				owners = append(owners, e.Name())
			}
		}
		sort.Strings(owners)
	}

	var docs []*Document
	for _, o := range owners {
		entries, err := os.ReadDir(filepath.Join(s.dataDir, o))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read owner directory %q: %w", o, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			doc, err := s.readFile(filepath.Join(s.dataDir, o, e.Name()))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Owner != docs[j].Owner {
			return docs[i].Owner < docs[j].Owner
		}
		return docs[i].Kind < docs[j].Kind
	})
	return docs, nil
}

// readFile parses frontmatter and the first ```json fence of a file.
func (s *MarkdownStore) readFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := parser.NewContext()
	root := s.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	data := frontmatter.Get(ctx)
	if data == nil {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}
	var fm docFrontmatter
	if err := data.Decode(&fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, fm.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at in %s: %w", path, err)
	}

	var body bytes.Buffer
	found := false
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fence, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || string(fence.Language(src)) != "json" {
			return ast.WalkContinue, nil
		}
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(src))
		}
		found = true
		return ast.WalkStop, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	if !found {
		return nil, fmt.Errorf("no json block in %s", path)
	}

	return &Document{
		Owner:     fm.Owner,
		Kind:      Kind(fm.Kind),
		Body:      json.RawMessage(bytes.TrimSpace(body.Bytes())),
		UpdatedAt: updated,
	}, nil
}

func renderDocument(doc *Document) ([]byte, error) {
	fm, err := yaml.Marshal(docFrontmatter{
		Owner:     doc.Owner,
		Kind:      string(doc.Kind),
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc.Body, "", "  "); err != nil {
		return nil, fmt.Errorf("indent body: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	fmt.Fprintf(&buf, "# %s\n\n", doc.Kind)
	buf.WriteString("```json\n")
	buf.Write(pretty.Bytes())
	buf.WriteString("\n```\n")
	return buf.Bytes(), nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("set file permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
