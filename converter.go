package cetd

// Converter renders extracted content HTML as Markdown.
type Converter interface {
	// Convert returns the Markdown for html. Empty input reports EINVALID.
	Convert(html string) (string, error)
}
