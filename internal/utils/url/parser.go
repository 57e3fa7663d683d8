package url

import neturl "net/url"

// Resolve resolves a possibly-relative href against the page URL.
// Unparseable input is returned unchanged; a source link is better
// preserved verbatim than dropped.
func Resolve(base, href string) string {
	if href == "" {
		return href
	}
	baseURL, err := neturl.Parse(base)
	if err != nil {
		return href
	}
	ref, err := neturl.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
