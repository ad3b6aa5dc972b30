package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Entry is one version section of the changelog
type Entry struct {
	Version string
	Date    string
	Body    string
}

// Changelog is a parsed Keep a Changelog document
type Changelog struct {
	Entries []Entry
	// Links maps version labels to their compare/release URLs
	Links map[string]string
}

// Entry returns the section for a version, tolerating a leading "v"
func (c *Changelog) Entry(version string) *Entry {
	version = strings.TrimPrefix(version, "v")
	for i := range c.Entries {
		if strings.TrimPrefix(c.Entries[i].Version, "v") == version {
			return &c.Entries[i]
		}
	}
	return nil
}

// parseChangelog walks the markdown AST and slices the source into one
// entry per level-2 heading.
func parseChangelog(source []byte) (*Changelog, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	changelog := &Changelog{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		changelog.Links[string(ref.Label())] = string(ref.Destination())
	}

	type section struct {
		version string
		date    string
		start   int // offset of the heading line
		body    int // offset just past the heading line
	}
	var sections []section

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitVersionHeading(headingText(heading, source))
		lines := heading.Lines()
		s := section{version: version, date: date}
		if lines.Len() > 0 {
			s.start = lines.At(0).Start
			s.body = lines.At(lines.Len() - 1).Stop
		}
		sections = append(sections, s)
		return ast.WalkContinue, nil
	})

	for i, s := range sections {
		end := len(source)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		body := ""
		if s.body < end {
			body = strings.TrimSpace(string(source[s.body:end]))
		}
		changelog.Entries = append(changelog.Entries, Entry{
			Version: s.version,
			Date:    s.date,
			Body:    body,
		})
	}

	return changelog, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if textNode, ok := n.(*ast.Text); ok {
				buf.Write(textNode.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// splitVersionHeading splits "[1.2.0] - 2024-03-01" (or the unbracketed
// form) into version and date.
func splitVersionHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, "[")

	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		date = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
		return version, date
	}

	if idx := strings.Index(heading, " - "); idx != -1 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}
	return heading, ""
}
