package page

// Config selects the UI chrome for one page.
type Config struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Layout      string `json:"layout"`
	ShowSidebar bool   `json:"show_sidebar"`
	ShowTopBar  bool   `json:"show_top_bar"`
	ShowChat    bool   `json:"show_chat"`
}

const (
	LayoutDefault  = "default"
	LayoutFull     = "full"
	LayoutCentered = "centered"
)

var defaultConfig = Config{
	Title:       "Foliopilot",
	Description: "AI stock portfolio copilot",
	Layout:      LayoutDefault,
	ShowSidebar: true,
	ShowTopBar:  true,
	ShowChat:    true,
}

var configs = map[string]Config{
	"dashboard": {
		Title:       "Dashboard",
		Description: "Portfolio overview and market movers",
		Layout:      LayoutDefault,
		ShowSidebar: true,
		ShowTopBar:  true,
		ShowChat:    true,
	},
	"portfolio": {
		Title:       "Portfolio",
		Description: "Holdings, allocation, and performance",
		Layout:      LayoutDefault,
		ShowSidebar: true,
		ShowTopBar:  true,
		ShowChat:    true,
	},
	"haiku": {
		Title:       "Haiku",
		Description: "Market haiku generator",
		Layout:      LayoutCentered,
		ShowSidebar: false,
		ShowTopBar:  true,
		ShowChat:    true,
	},
	"settings": {
		Title:       "Settings",
		Description: "Account and notification preferences",
		Layout:      LayoutFull,
		ShowSidebar: true,
		ShowTopBar:  true,
		ShowChat:    false,
	},
}

// Lookup returns the config for a page id. Unknown ids fall back to the
// default entry; there is no error path.
func Lookup(id string) Config {
	if cfg, ok := configs[id]; ok {
		return cfg
	}
	return defaultConfig
}

// Default returns the fallback config used for unknown page ids.
func Default() Config {
	return defaultConfig
}

// IDs lists the registered page ids.
func IDs() []string {
	ids := make([]string, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	return ids
}
