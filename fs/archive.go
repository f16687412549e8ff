// Package fs provides file-based bookmark sources and the card archive.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cardmark"
	"gopkg.in/yaml.v3"
)

// CardExt is the file extension of archived cards.
const CardExt = ".card"

// Ensure Archive implements cardmark.CardWriter at compile time.
var _ cardmark.CardWriter = (*Archive)(nil)

// Archive writes delivered cards as Markdown files with YAML frontmatter.
type Archive struct {
	baseDir string
}

// NewArchive creates a new Archive that writes to the given base directory.
func NewArchive(baseDir string) *Archive {
	return &Archive{baseDir: baseDir}
}

// WriteCard writes card to its CardPath under the base directory,
// replacing an earlier card for the same source.
func (a *Archive) WriteCard(ctx context.Context, card *cardmark.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	relPath, err := CardPath(card.Src)
	if err != nil {
		return err
	}

	content, err := FormatCard(card, time.Now())
	if err != nil {
		return err
	}

	fullPath := filepath.Join(a.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// CardPath converts a source URL to a relative archive path of the form
// <host>/<slug>-<hash>.card. The hash is taken over the URL without its
// fragment, so sources whose slugs collide still get their own file.
// Example: https://news.ycombinator.com/item?id=1 → news.ycombinator.com/item-id-1-<hash>.card
//
// Returns EINVALID if the path would leave the archive directory.
func CardPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", cardmark.Errorf(cardmark.EINVALID, "invalid card source: %v", err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", cardmark.Errorf(cardmark.EINVALID, "card source has no host: %s", rawURL)
	}
	if strings.Trim(host, ".") == "" {
		return "", cardmark.Errorf(cardmark.EINVALID, "card source has an invalid host: %s", rawURL)
	}

	slug := slugInvalid.ReplaceAllString(strings.ToLower(u.Path+" "+u.RawQuery), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "index"
	}

	u.Fragment, u.RawFragment = "", ""
	name := fmt.Sprintf("%s-%s%s", slug, sourceHash(u.String()), CardExt)

	relPath := filepath.Join(host, name)
	if !filepath.IsLocal(relPath) {
		return "", cardmark.Errorf(cardmark.EINVALID, "card source escapes the archive: %s", rawURL)
	}
	return relPath, nil
}

// sourceHash returns the first 8 hex digits of the xxHash of src.
func sourceHash(src string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(src))[:8]
}

type frontmatter struct {
	Src      string `yaml:"src"`
	Title    string `yaml:"title"`
	Captured string `yaml:"captured"`
}

// FormatCard formats a card with YAML frontmatter followed by its text.
func FormatCard(card *cardmark.Card, captured time.Time) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		Src:      card.Src,
		Title:    card.Title,
		Captured: captured.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n")
	if card.Text != "" {
		b.WriteString("\n")
		b.WriteString(card.Text)
		b.WriteString("\n")
	}
	return b.Bytes(), nil
}
