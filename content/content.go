// Package content embeds the page sources the indexer feeds to the chatbot.
//
// Files under pages/ mirror the site's route structure: pages/about.md becomes
// /about, pages/index.md becomes the site root. Add a page here and re-run
// `portfolio index` to make it searchable.
package content

import "embed"

//go:embed pages/*.md
var Pages embed.FS

// PagesDir is the root directory within Pages.
const PagesDir = "pages"
