package page

import "github.com/foliopilot/foliopilot/view"

// Template returns the descriptor tree for a page id. Marker-prefixed props
// ($owner, $as_of, $summary, ...) are resolved per request by the caller.
// Unknown ids fall back to a bare container, mirroring Lookup.
func Template(id string) *view.Descriptor {
	switch id {
	case "dashboard":
		return dashboardTemplate()
	case "portfolio":
		return portfolioTemplate()
	case "haiku":
		return haikuTemplate()
	default:
		return view.New(string(view.KindContainer), nil)
	}
}

func dashboardTemplate() *view.Descriptor {
	return view.New("stack", map[string]any{"id": "dashboard"},
		view.New("heading", map[string]any{"text": "$greeting"}),
		view.New("row", nil,
			view.New("card", map[string]any{"title": "Portfolio value"},
				view.New("text", map[string]any{"text": "$total_value"}),
				view.New("badge", map[string]any{"text": "$day_change"}),
			),
			view.New("card", map[string]any{"title": "Top mover"},
				view.New("text", map[string]any{"text": "$top_mover"}),
			),
		),
		view.New("chart", map[string]any{"title": "Allocation", "series": "$allocation"}),
	)
}

func portfolioTemplate() *view.Descriptor {
	return view.New("stack", map[string]any{"id": "portfolio"},
		view.New("heading", map[string]any{"text": "Holdings"}),
		view.New("table", map[string]any{"rows": "$holdings"}),
	)
}

func haikuTemplate() *view.Descriptor {
	return view.New("stack", map[string]any{"id": "haiku"},
		view.New("heading", map[string]any{"text": "$topic"}),
		view.New("card", map[string]any{"title": "Haiku"},
			view.New("text", map[string]any{"text": "$line_one"}),
			view.New("text", map[string]any{"text": "$line_two"}),
			view.New("text", map[string]any{"text": "$line_three"}),
			view.New("image", map[string]any{"src": "$image", "alt": "$topic"}),
		),
	)
}
