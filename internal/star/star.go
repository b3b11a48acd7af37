package star

import "strings"

// LanguageOthers is the bucket for repositories without a language tag.
const LanguageOthers = "Others"

// Record is one starred repository as observed at fetch time.
// Order is the fetch-sequence index; GitHub returns stars newest first,
// so Order doubles as a reverse-chronological "date starred" proxy.
type Record struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
	Order       int    `json:"order"`
}

// escaper escapes only < and >, matching the generated document's historical
// output. Other HTML metacharacters pass through untouched.
var escaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize prepares a repository description for markdown embedding:
// escape angle brackets, drop embedded newlines, trim surrounding whitespace.
func Sanitize(description string) string {
	s := escaper.Replace(description)
	s = strings.ReplaceAll(s, "\n", "")
	return strings.TrimSpace(s)
}
