package extract

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestClassifyLinks(t *testing.T) {
	hrefs := []string{
		"https://a.gov/x.pdf",
		"https://a.gov/page",
		"/relative",
		"",
		"mailto:grants@a.gov",
		"https://b.gov/guide.PDF",
		"https://b.gov/doc.pdf?version=2",
		"https://a.gov/page",
		"https://a.gov/x.pdf",
	}

	links := ClassifyLinks(hrefs)

	expectedDocs := []string{
		"https://a.gov/x.pdf",
		"https://b.gov/doc.pdf?version=2",
		"https://b.gov/guide.PDF",
	}
	expectedExt := []string{
		"https://a.gov/page",
	}

	if !reflect.DeepEqual(links.Documents, expectedDocs) {
		t.Errorf("Documents = %v, expected %v", links.Documents, expectedDocs)
	}
	if !reflect.DeepEqual(links.External, expectedExt) {
		t.Errorf("External = %v, expected %v", links.External, expectedExt)
	}
}

func TestClassifyLinksOrderIndependent(t *testing.T) {
	hrefs := []string{
		"https://z.gov/last.pdf",
		"https://a.gov/first.pdf",
		"https://m.gov/middle",
		"https://b.gov/page",
		"https://c.gov/file.pdf?dl=1",
	}

	baseline := ClassifyLinks(hrefs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]string, len(hrefs))
		copy(shuffled, hrefs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := ClassifyLinks(shuffled)
		if !reflect.DeepEqual(got, baseline) {
			t.Fatalf("permuted input changed output: %v vs %v", got, baseline)
		}
	}
}

func TestLinksPrimary(t *testing.T) {
	tests := []struct {
		name         string
		links        Links
		expectedURL  string
		expectedKind string
	}{
		{
			name: "document wins over external",
			links: Links{
				Documents: []string{"https://a.gov/x.pdf", "https://b.gov/y.pdf"},
				External:  []string{"https://a.gov/page"},
			},
			expectedURL:  "https://a.gov/x.pdf",
			expectedKind: "primary_pdf",
		},
		{
			name: "external fallback",
			links: Links{
				External: []string{"https://a.gov/page"},
			},
			expectedURL:  "https://a.gov/page",
			expectedKind: "external_link",
		},
		{
			name:         "no links",
			links:        Links{},
			expectedURL:  "",
			expectedKind: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, kind := tt.links.Primary()
			if url != tt.expectedURL || kind != tt.expectedKind {
				t.Errorf("Primary() = (%q, %q), expected (%q, %q)",
					url, kind, tt.expectedURL, tt.expectedKind)
			}
		})
	}
}
