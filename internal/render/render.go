// Package render turns an aggregated star list into the Awesome Stars
// markdown document. The output layout (badges, anchors, table and list
// shapes) is a compatibility contract with already-published documents,
// so the emitted bytes are deliberately exact.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/star"
)

// Format controls how each language section is rendered.
type Format string

const (
	FormatTable Format = "table" // default: GitHub-flavored markdown table
	FormatList  Format = "list"  // one bullet per repository
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatList:
		return Format(s), nil
	}
	return "", errors.NewInvalidRequest("type must be one of: table, list")
}

const (
	awesomeBadgeURL = "https://cdn.rawgit.com/sindresorhus/awesome/d7305f38d29fed78fa85652e3a63e154dd8e8829/media/badge.svg"
	awesomeURL      = "https://github.com/sindresorhus/awesome"
	projectURL      = "https://github.com/hpungsan/starred"

	countBadgeURL = "https://img.shields.io/badge/Total-%d-green.svg"
	dateBadgeURL  = "https://img.shields.io/badge/Date-%s-blue.svg"

	cc0BadgeURL = "http://mirrors.creativecommons.org/presskit/buttons/88x31/svg/cc-zero.svg"
	cc0URL      = "https://creativecommons.org/publicdomain/zero/1.0/"
)

// Document is the complete input to Render.
type Document struct {
	List     *star.List
	Username string
	Format   Format
	Date     time.Time // "today" for the date badge
}

// Render writes the markdown document for doc to w. It is a pure function
// of its inputs and does not mutate doc.List.
func Render(w io.Writer, doc Document) error {
	var b strings.Builder

	writeHeader(&b, doc.List.Total, doc.Date)
	writeContents(&b, doc.List)
	for _, lang := range doc.List.Languages {
		writeSection(&b, lang, doc.List.Groups[lang], doc.Format)
	}
	writeLicense(&b, doc.Username)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeHeader emits the title, badges, attribution, and contents heading.
func writeHeader(b *strings.Builder, total int, date time.Time) {
	// Shields.io needs literal dashes in the date doubled.
	badgeDate := strings.ReplaceAll(date.Format("2006-01-02"), "-", "--")

	fmt.Fprintf(b, "# Awesome Stars [![Awesome](%s)](%s)\n\n", awesomeBadgeURL, awesomeURL)
	fmt.Fprintf(b, "> A curated list of my GitHub stars!  Generated by [starred](%s).\n\n", projectURL)
	fmt.Fprintf(b, "![Total]("+countBadgeURL+")\n", total)
	fmt.Fprintf(b, "![Date]("+dateBadgeURL+")\n\n", badgeDate)
	b.WriteString("## Contents\n\n")
}

// writeContents emits the table of contents, one line per language.
func writeContents(b *strings.Builder, list *star.List) {
	for _, lang := range list.Languages {
		count := len(list.Groups[lang])
		fmt.Fprintf(b, "  - [%s(%d)](#%s-%d)\n", lang, count, Anchor(lang), count)
	}
	b.WriteString("\n")
}

// writeSection emits one language heading plus its table or bullet list.
func writeSection(b *strings.Builder, lang string, group []star.Record, format Format) {
	fmt.Fprintf(b, "## %s (%d) \n\n", escapeHeading(lang), len(group))

	if format == FormatList {
		for _, r := range group {
			fmt.Fprintf(b, "- [%s](%s) - %s\n", r.Name, r.URL, r.Description)
		}
		b.WriteString("\n")
		return
	}

	rows := make([][]string, 0, len(group)+1)
	rows = append(rows, []string{"", "Name", "Description", "Owner", "Stars"})
	for i, r := range group {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("[%s](%s)", r.Name, r.URL),
			r.Description,
			r.Owner,
			strconv.Itoa(r.Stars),
		})
	}
	writeTable(b, rows)
	b.WriteString("\n")
}

// writeLicense emits the CC0 footer block parameterized by username.
func writeLicense(b *strings.Builder, username string) {
	b.WriteString("\n## License\n\n")
	fmt.Fprintf(b, "[![CC0](%s)](%s)\n\n", cc0BadgeURL, cc0URL)
	fmt.Fprintf(b, "To the extent possible under law, [%s](https://github.com/%s)"+
		" has waived all copyright and related or neighboring rights to this work.\n\n",
		username, username)
}

// Anchor derives the markdown anchor for a language name: lowercased, with
// whitespace runs joined by hyphens. The section count is appended by the
// caller so the contents links resolve against the generated headings.
func Anchor(language string) string {
	return strings.Join(strings.Fields(strings.ToLower(language)), "-")
}

// escapeHeading protects markdown heading levels from # characters inside a
// language name (for example "C#") by inserting a space after each one.
func escapeHeading(language string) string {
	return strings.ReplaceAll(language, "#", "# #")
}
