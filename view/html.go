package view

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

var kindTags = map[Kind]string{
	KindContainer: "div",
	KindStack:     "div",
	KindRow:       "div",
	KindCard:      "section",
	KindHeading:   "h2",
	KindText:      "p",
	KindSpan:      "span",
	KindButton:    "button",
	KindImage:     "img",
	KindBadge:     "span",
	KindTable:     "table",
	KindChart:     "figure",
	KindInput:     "input",
}

// attrProps are prop keys emitted as native HTML attributes; every other
// scalar prop becomes a data-* attribute. Non-scalar props (handler refs,
// nested structures) are not serializable and are skipped.
var attrProps = map[string]string{
	"src":         "src",
	"alt":         "alt",
	"href":        "href",
	"value":       "value",
	"placeholder": "placeholder",
	"id":          "id",
}

// contentProps are prop keys rendered as element text content.
var contentProps = []string{"text", "label", "title"}

// voidTags are HTML void elements: no content, no closing tag.
var voidTags = map[string]bool{
	"img":   true,
	"input": true,
}

// MarshalHTML serializes a rendered node tree to escaped HTML. Nil nodes
// (hidden subtrees) produce no output.
func MarshalHTML(n *Node) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	tag, ok := kindTags[n.Kind]
	if !ok {
		tag = "div"
	}

	b.WriteString("<")
	b.WriteString(tag)
	fmt.Fprintf(b, ` class=%q`, "fp-"+string(n.Kind))
	if n.RequestedKind != "" {
		fmt.Fprintf(b, ` data-kind=%q`, html.EscapeString(n.RequestedKind))
	}
	writeAttrs(b, n.Props)
	b.WriteString(">")

	if voidTags[tag] {
		return
	}

	for _, key := range contentProps {
		if v, ok := n.Props[key]; ok {
			if s, ok := scalarString(v); ok {
				b.WriteString(html.EscapeString(s))
			}
		}
	}

	for _, child := range n.Children {
		if child == nil {
			continue
		}
		writeNode(b, child)
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func writeAttrs(b *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s, ok := scalarString(props[key])
		if !ok {
			continue
		}
		if attr, native := attrProps[key]; native {
			fmt.Fprintf(b, ` %s=%q`, attr, html.EscapeString(s))
			continue
		}
		if isContentProp(key) {
			continue
		}
		fmt.Fprintf(b, ` data-%s=%q`, key, html.EscapeString(s))
	}
}

func isContentProp(key string) bool {
	for _, c := range contentProps {
		if key == c {
			return true
		}
	}
	return false
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return fmt.Sprintf("%t", t), true
	case int, int32, int64, float32, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// RenderShell wraps body HTML in a full document shell with the resolved
// props embedded as JSON for client hydration.
func RenderShell(bodyHTML string, props map[string]any, title string) (string, error) {
	if props == nil {
		props = map[string]any{}
	}
	if title == "" {
		title = "Foliopilot"
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("marshal shell props: %w", err)
	}
	escapedProps := strings.ReplaceAll(string(propsJSON), "</", "<\\/")

	shell := fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" /><meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="app">%s</div>
    <script id="__FOLIOPILOT_PROPS__" type="application/json">%s</script>
  </body>
</html>
`, html.EscapeString(title), bodyHTML, escapedProps)

	return shell, nil
}
