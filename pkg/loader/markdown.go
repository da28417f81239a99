package loader

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// loadMarkdown reads the list items of a Markdown document, at any depth,
// as suggestions. An item whose text contains a link becomes a structured
// entry with the link target as its value and the item text as its label.
// Everything outside lists is ignored.
func loadMarkdown(input string) ([]any, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(input), p)

	var results []any
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		item, ok := node.(*ast.ListItem)
		if !entering || !ok {
			return ast.GoToNext
		}
		if entry, ok := markdownEntry(item); ok {
			results = append(results, entry)
		}
		return ast.GoToNext
	})
	if len(results) == 0 {
		return nil, ErrEmpty
	}
	return results, nil
}

// markdownEntry reads the first paragraph of item. Nested lists are left to
// the outer walk.
func markdownEntry(item *ast.ListItem) (any, bool) {
	for _, child := range item.GetChildren() {
		para, ok := child.(*ast.Paragraph)
		if !ok {
			continue
		}
		var text strings.Builder
		dest := ""
		ast.WalkFunc(para, func(node ast.Node, entering bool) ast.WalkStatus {
			if !entering {
				return ast.GoToNext
			}
			switch n := node.(type) {
			case *ast.Link:
				if dest == "" {
					dest = string(n.Destination)
				}
			case *ast.Text:
				text.Write(n.Literal)
			case *ast.Code:
				text.Write(n.Literal)
			case *ast.Softbreak, *ast.Hardbreak:
				text.WriteByte(' ')
			}
			return ast.GoToNext
		})
		label := strings.Join(strings.Fields(text.String()), " ")
		if label == "" {
			return nil, false
		}
		if dest != "" {
			return map[string]any{"value": dest, "label": label}, true
		}
		return label, true
	}
	return nil, false
}
