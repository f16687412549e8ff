package cardmark

// Converter converts HTML fragments to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment (e.g., a post body a strategy
	// selected) into Markdown.
	Convert(html string) (string, error)
}
