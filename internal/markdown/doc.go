// Package markdown converts awesome list README documents into the node
// sequence consumed by the catalog parser. It owns the goldmark
// configuration, list item mark extraction (attribute icons and deletion)
// and the filesystem loader that discovers one document per locale.
package markdown
