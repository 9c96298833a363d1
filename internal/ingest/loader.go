package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// LoadFile reads conversation records from a corpus file. YAML files may
// hold one record or a list; plain-text and HTML exports become a single
// record whose ID derives from the filename.
func LoadFile(path string) ([]ConversationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	case ".html", ".htm":
		text, err := visibleText(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return []ConversationRecord{recordFromText(path, text)}, nil
	case ".txt":
		return []ConversationRecord{recordFromText(path, string(data))}, nil
	default:
		return nil, fmt.Errorf("unsupported corpus file type: %s", path)
	}
}

func parseYAML(path string, data []byte) ([]ConversationRecord, error) {
	var records []ConversationRecord
	if err := yaml.Unmarshal(data, &records); err == nil {
		return withIDs(path, records), nil
	}

	var single ConversationRecord
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return withIDs(path, []ConversationRecord{single}), nil
}

func withIDs(path string, records []ConversationRecord) []ConversationRecord {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range records {
		if records[i].ConversationID == "" {
			records[i].ConversationID = fmt.Sprintf("%s-%d", base, i+1)
		}
	}
	return records
}

func recordFromText(path, text string) ConversationRecord {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ConversationRecord{
		ConversationID: base,
		Content:        strings.TrimSpace(text),
	}
}

// visibleText extracts text nodes from an HTML export, skipping
// script/style content.
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
