package cardmark

import "context"

// Untitled is the card title used when neither the page nor the tab has one.
const Untitled = "Untitled"

// Card is the normalized record of a captured bookmark sent to the card API.
type Card struct {
	Src   string `json:"src"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Validate returns an error if the card violates its invariants.
func (c *Card) Validate() error {
	if c.Src == "" {
		return Errorf(EINVALID, "card source URL required")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "card title required")
	}
	return nil
}

// BuildCard merges an extraction result with bookmark metadata.
// It never fails: tab and result may be nil, in which case the card
// falls back to the tab title, then Untitled, and to empty text.
func BuildCard(event *BookmarkEvent, tab *Tab, result *ExtractResult) *Card {
	card := &Card{Src: event.URL}

	switch {
	case result != nil && result.Title != "":
		card.Title = result.Title
	case tab != nil && tab.Title != "":
		card.Title = tab.Title
	default:
		card.Title = Untitled
	}

	if result != nil {
		card.Text = result.Text
	}

	return card
}

// CardWriter stores a local copy of delivered cards.
type CardWriter interface {
	WriteCard(ctx context.Context, card *Card) error
}
