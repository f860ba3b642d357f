package record

import (
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/host"
)

// URLs builds host links under a base URL such as
// "https://journals.example.org/index.php".
type URLs struct {
	BaseURL string
}

var _ host.URLDispatcher = URLs{}

// URL returns the absolute URL of a route. path holds the journal path
// followed by the route's own parameters.
func (u URLs) URL(route host.Route, path []string, query url.Values) string {
	parts := []string{strings.TrimRight(u.BaseURL, "/")}
	if len(path) > 0 {
		parts = append(parts, url.PathEscape(path[0]))
	}

	switch route {
	case host.RouteArticleView:
		parts = append(parts, "article", "view")
		parts = append(parts, escapeAll(path[1:])...)
	case host.RouteGalleyDownload:
		parts = append(parts, "article", "download")
		parts = append(parts, escapeAll(path[1:])...)
	case host.RoutePluginDownload:
		parts = append(parts, "jatsTemplate", "download")
	}

	link := strings.Join(parts, "/")
	if len(query) > 0 {
		link += "?" + query.Encode()
	}
	return link
}

func escapeAll(segments []string) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = url.PathEscape(s)
	}
	return out
}
