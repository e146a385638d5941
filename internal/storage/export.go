// ABOUTME: Export and import functionality for fitness documents.
// ABOUTME: Supports JSON, YAML, Markdown and HTML export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/fittrack/internal/models"
)

// ExportVersion is written into every export file.
const ExportVersion = "1.0"

// ExportData represents the full export format.
type ExportData struct {
	Version    string      `json:"version" yaml:"version"`
	ExportedAt time.Time   `json:"exported_at" yaml:"exported_at"`
	Tool       string      `json:"tool" yaml:"tool"`
	Documents  []*Document `json:"documents" yaml:"documents"`
}

// GetAllData retrieves every document for export.
func (s *Store) GetAllData() (*ExportData, error) {
	docs, err := s.backend.ListDocuments("")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: s.now(),
		Tool:       "fittrack",
		Documents:  docs,
	}, nil
}

// ImportData writes every document of an export, replacing existing ones.
func (s *Store) ImportData(data *ExportData) error {
	for _, doc := range data.Documents {
		if !json.Valid(doc.Body) {
			return fmt.Errorf("import %s/%s: body is not valid JSON", doc.Owner, doc.Kind)
		}
		if err := s.backend.PutDocument(doc); err != nil {
			return fmt.Errorf("import %s/%s: %w", doc.Owner, doc.Kind, err)
		}
	}
	return nil
}

// ImportJSON imports data from JSON bytes.
func (s *Store) ImportJSON(data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return s.ImportData(&exportData)
}

// ExportJSON exports all data as JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type yamlDocument struct {
	Owner     string `yaml:"owner"`
	Kind      string `yaml:"kind"`
	UpdatedAt string `yaml:"updated_at"`
	Body      any    `yaml:"body"`
}

// ExportYAML exports all data as YAML, with bodies as nested maps.
func (s *Store) ExportYAML() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string         `yaml:"version"`
		ExportedAt string         `yaml:"exported_at"`
		Tool       string         `yaml:"tool"`
		Documents  []yamlDocument `yaml:"documents"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Documents:  make([]yamlDocument, 0, len(data.Documents)),
	}

	for _, d := range data.Documents {
		var body any
		if err := json.Unmarshal(d.Body, &body); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", d.Owner, d.Kind, err)
		}
		yamlData.Documents = append(yamlData.Documents, yamlDocument{
			Owner:     d.Owner,
			Kind:      string(d.Kind),
			UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
			Body:      body,
		})
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders a readable report. An empty owner includes every
// user; account and session documents are never included.
func (s *Store) ExportMarkdown(owner string) (string, error) {
	docs, err := s.backend.ListDocuments(owner)
	if err != nil {
		return "", fmt.Errorf("list documents: %w", err)
	}

	grouped := make(map[string][]*Document)
	for _, d := range docs {
		if d.Owner == GlobalOwner {
			continue
		}
		grouped[d.Owner] = append(grouped[d.Owner], d)
	}
	owners := make([]string, 0, len(grouped))
	for o := range grouped {
		owners = append(owners, o)
	}
	sort.Strings(owners)

	var sb strings.Builder
	now := s.now()
	sb.WriteString(fmt.Sprintf("# Fittrack Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, o := range owners {
		sb.WriteString(fmt.Sprintf("## User %s\n\n", o))
		for _, d := range grouped[o] {
			if d.Kind == KindWorkout {
				writeWorkoutMarkdown(&sb, d)
				continue
			}
			writeFieldsMarkdown(&sb, d)
		}
	}

	return sb.String(), nil
}

func writeWorkoutMarkdown(sb *strings.Builder, d *Document) {
	sb.WriteString("### Workout plan\n\n")
	var st models.WorkoutState
	if err := json.Unmarshal(d.Body, &st); err != nil {
		sb.WriteString("_Unreadable workout document._\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("Current day: %d · Streak: %d · Completed: %d/%d\n\n",
		st.CurrentDay, st.Streak, len(st.CompletedDays), models.PlanLength))
	if len(st.WorkoutHistory) == 0 {
		sb.WriteString("No plan generated yet.\n\n")
		return
	}

	sb.WriteString("| Day | Title | Type | Duration | Completed |\n")
	sb.WriteString("|-----|-------|------|----------|-----------|\n")
	for _, w := range st.WorkoutHistory {
		done := ""
		if w.CompletedAt != nil {
			done = w.CompletedAt.Format("2006-01-02 15:04")
		} else if st.IsCompleted(w.Day) {
			done = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			w.Day, w.Title, w.Type, w.Duration, done))
	}
	sb.WriteString("\n")
}

// writeFieldsMarkdown lists the scalar top-level fields of a document.
func writeFieldsMarkdown(sb *strings.Builder, d *Document) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", d.Kind))
	var fields map[string]any
	if err := json.Unmarshal(d.Body, &fields); err != nil {
		sb.WriteString("_Unreadable document._\n\n")
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := fields[k].(type) {
		case []any:
			sb.WriteString(fmt.Sprintf("- **%s**: %d entries\n", k, len(v)))
		case map[string]any:
			sb.WriteString(fmt.Sprintf("- **%s**: %d fields\n", k, len(v)))
		case nil:
		default:
			sb.WriteString(fmt.Sprintf("- **%s**: %v\n", k, v))
		}
	}
	sb.WriteString("\n")
}

// MarkdownToHTML converts an exported Markdown report to HTML.
func MarkdownToHTML(md string) ([]byte, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
