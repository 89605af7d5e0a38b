package extract

import (
	"sort"
	"strings"
)

// Links holds the classified anchor targets of one page. Both lists are
// deduplicated and lexicographically sorted, so the classification is
// stable under any permutation of the input.
type Links struct {
	Documents []string
	External  []string
}

// ClassifyLinks partitions anchor hrefs into PDF documents and other
// external links. Only absolute http(s) URLs are kept; relative or empty
// hrefs are discarded. A URL counts as a document when its lowered form
// ends in ".pdf" or contains ".pdf?".
func ClassifyLinks(hrefs []string) Links {
	docSeen := make(map[string]bool)
	extSeen := make(map[string]bool)
	var links Links

	for _, href := range hrefs {
		href = strings.TrimSpace(href)
		if href == "" || !strings.HasPrefix(href, "http") {
			continue
		}

		low := strings.ToLower(href)
		if strings.HasSuffix(low, ".pdf") || strings.Contains(low, ".pdf?") {
			if !docSeen[href] {
				docSeen[href] = true
				links.Documents = append(links.Documents, href)
			}
		} else {
			if !extSeen[href] {
				extSeen[href] = true
				links.External = append(links.External, href)
			}
		}
	}

	sort.Strings(links.Documents)
	sort.Strings(links.External)
	return links
}

// Primary selects the single link retained on the record: the first
// document when any exist, otherwise the first external link. The second
// return names the kind ("primary_pdf" or "external_link"); both returns
// are empty when the page had no usable links.
func (l Links) Primary() (url, kind string) {
	if len(l.Documents) > 0 {
		return l.Documents[0], "primary_pdf"
	}
	if len(l.External) > 0 {
		return l.External[0], "external_link"
	}
	return "", ""
}
