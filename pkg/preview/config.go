package preview

// Config holds rendering options for label preview PDFs.
type Config struct {
	LayerName string // base name of the label layer, page number appended
	DrawWords bool   // also draw the recognized word boxes for context
	Font      FontConfig
}

// FontConfig contains font settings for caption rendering.
type FontConfig struct {
	Name        string  // font name (e.g., "Helvetica")
	Style       string  // font style ("", "B", "I", "BI")
	Size        float64 // caption font size
	AscentRatio float64 // vertical positioning ratio
}

// DefaultFont is Helvetica, which renders reliably across PDF viewers.
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "B",
	Size:        8,
	AscentRatio: 0.718,
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LayerName: "Labels",
		DrawWords: true,
		Font:      DefaultFont,
	}
}
