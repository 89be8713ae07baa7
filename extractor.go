package cetd

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Text is the plain text of ContentHTML with runs of whitespace
	// collapsed to single spaces.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns EINVALID if the input is empty or cannot be parsed.
	Extract(html string) (*ExtractResult, error)
}

// Engine identifies a content extraction implementation.
type Engine string

// Supported extraction engines.
const (
	EngineDensity     Engine = "density"
	EngineReadability Engine = "readability"
	EngineTrafilatura Engine = "trafilatura"
)

// Engines returns every supported engine in display order.
func Engines() []Engine {
	return []Engine{EngineDensity, EngineReadability, EngineTrafilatura}
}
