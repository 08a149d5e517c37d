package view

import (
	"strings"
	"testing"
)

func TestMarshalHTMLEscapesContent(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()
	node := it.Render(New("text", map[string]any{"text": "<script>alert(1)</script>"}), nil)

	out := MarshalHTML(node)
	if strings.Contains(out, "<script>") {
		t.Fatalf("content must be escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("escaped content missing: %s", out)
	}
}

func TestMarshalHTMLSkipsHiddenChildren(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()
	node := it.Render(New("stack", nil,
		New("text", map[string]any{"text": "shown"}),
		New("text", map[string]any{"text": "hidden"}).Hidden(),
	), nil)

	out := MarshalHTML(node)
	if !strings.Contains(out, "shown") {
		t.Fatalf("visible child missing: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("hidden child leaked into output: %s", out)
	}
}

func TestMarshalHTMLNilNode(t *testing.T) {
	t.Parallel()

	if out := MarshalHTML(nil); out != "" {
		t.Fatalf("nil node must produce empty output, got %q", out)
	}
}

func TestMarshalHTMLAttributes(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()
	node := it.Render(New("image", map[string]any{
		"src":    "Mount_Fuji.jpg",
		"alt":    "Mount Fuji",
		"symbol": "AAPL",
	}), nil)

	out := MarshalHTML(node)
	if !strings.Contains(out, `src="Mount_Fuji.jpg"`) {
		t.Fatalf("native attribute missing: %s", out)
	}
	if !strings.Contains(out, `data-symbol="AAPL"`) {
		t.Fatalf("data attribute missing: %s", out)
	}
	if !strings.Contains(out, `class="fp-image"`) {
		t.Fatalf("kind class missing: %s", out)
	}
}

func TestMarshalHTMLVoidElements(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()

	out := MarshalHTML(it.Render(New("image", map[string]any{"src": "Mount_Fuji.jpg"}), nil))
	if strings.Contains(out, "</img>") {
		t.Fatalf("img must not carry a closing tag: %s", out)
	}
	if !strings.Contains(out, `src="Mount_Fuji.jpg"`) {
		t.Fatalf("img attributes missing: %s", out)
	}

	out = MarshalHTML(it.Render(New("input", map[string]any{"placeholder": "Symbol"}), nil))
	if strings.Contains(out, "</input>") {
		t.Fatalf("input must not carry a closing tag: %s", out)
	}
}

func TestMarshalHTMLUnknownKindKeepsRequestedName(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()
	out := MarshalHTML(it.Render(New("widget-xyz", map[string]any{"text": "hi"}), nil))

	if !strings.Contains(out, `class="fp-container"`) {
		t.Fatalf("unknown kind must render as container: %s", out)
	}
	if !strings.Contains(out, `data-kind="widget-xyz"`) {
		t.Fatalf("requested name must survive the fallback: %s", out)
	}
}

func TestMarshalHTMLSkipsNonScalarProps(t *testing.T) {
	t.Parallel()

	it := NewInterpreter()
	node := it.Render(New("card", map[string]any{
		"title":  "Portfolio",
		"onOpen": func() {},
		"rows":   []string{"a", "b"},
	}), nil)

	out := MarshalHTML(node)
	if !strings.Contains(out, "Portfolio") {
		t.Fatalf("title content missing: %s", out)
	}
	if strings.Contains(out, "onOpen") || strings.Contains(out, "rows") {
		t.Fatalf("non-scalar props must be skipped: %s", out)
	}
}

func TestRenderShell(t *testing.T) {
	t.Parallel()

	out, err := RenderShell("<div>body</div>", map[string]any{"note": "a</script>b"}, "Dashboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<title>Dashboard</title>") {
		t.Fatalf("title missing: %s", out)
	}
	if !strings.Contains(out, "<div>body</div>") {
		t.Fatalf("body missing: %s", out)
	}
	if strings.Contains(out, "</script>b") {
		t.Fatalf("props JSON must escape closing script tags: %s", out)
	}

	out, err = RenderShell("", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<title>Foliopilot</title>") {
		t.Fatalf("default title missing: %s", out)
	}
}
