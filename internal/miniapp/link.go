package miniapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/maya-florenko/miniappbot/internal/token"
)

// UserParam is the query parameter carrying the user token.
const UserParam = "user"

// PageCreate is the character creation page of the mini-app.
const PageCreate = "create.html"

// BuildLink returns baseURL[/page]?user=<token>. An empty page links to the
// mini-app root. Each segment of page is path-escaped, so a page cannot
// inject its own query or fragment.
func BuildLink(baseURL string, id int64, page string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	if page = strings.TrimLeft(page, "/"); page != "" {
		for _, seg := range strings.Split(page, "/") {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(seg))
		}
	}
	b.WriteString("?" + UserParam + "=")
	b.WriteString(token.Encode(id))
	return b.String()
}

// Linker builds mini-app links against a fixed base URL.
type Linker struct {
	BaseURL string
}

// NewLinker returns a Linker for the mini-app at baseURL.
func NewLinker(baseURL string) Linker {
	return Linker{BaseURL: baseURL}
}

// Home links to the mini-app root.
func (l Linker) Home(id int64) string {
	return BuildLink(l.BaseURL, id, "")
}

// Page links to a sub-page of the mini-app.
func (l Linker) Page(id int64, page string) string {
	return BuildLink(l.BaseURL, id, page)
}

// UserFromQuery extracts the user id from a raw query string such as the
// one a mini-app page is opened with.
func UserFromQuery(rawQuery string) (int64, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return 0, fmt.Errorf("parse query: %w", err)
	}
	tok := q.Get(UserParam)
	if tok == "" {
		return 0, fmt.Errorf("%w: missing %q parameter", token.ErrDecode, UserParam)
	}
	return token.Decode(tok)
}
