// Package tabbedjournal holds assets embedded into the journal binaries.
package tabbedjournal

import "embed"

// EmailFS contains the email templates, one directory per template holding a
// plaintext.tmpl and optionally an html.tmpl.
//
//go:embed templates/emails
var EmailFS embed.FS
