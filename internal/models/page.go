package models

// NotFound is substituted for absent scalar fields when a record is rendered.
const NotFound = "No encontrado"

// SeoRecord holds the on-page SEO data extracted from one URL
type SeoRecord struct {
	URL             string   `json:"url"`
	Title           *string  `json:"title,omitempty"`
	MetaDescription *string  `json:"meta_description,omitempty"`
	MetaKeywords    *string  `json:"meta_keywords,omitempty"`
	Canonical       *string  `json:"canonical,omitempty"`
	H1              []string `json:"h1"`
	H2              []string `json:"h2"`
	H3              []string `json:"h3"`
	OtherMeta       MetaTags `json:"other_meta"`
	Error           string   `json:"error,omitempty"`
}

// Failed reports whether the record was produced by a fetch or parse failure.
func (r SeoRecord) Failed() bool {
	return r.Error != ""
}

// FailedRecord builds the record for a URL that could not be fetched or parsed
func FailedRecord(url, msg string) SeoRecord {
	return SeoRecord{URL: url, Error: msg}
}

// MetaTags is a name→content mapping that remembers first-insertion order.
// Setting an existing name replaces its value but keeps its position.
type MetaTags struct {
	names  []string
	values map[string]string
}

// Set stores value under name, overwriting any earlier value.
func (m *MetaTags) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name.
func (m MetaTags) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of distinct names.
func (m MetaTags) Len() int {
	return len(m.names)
}

// Names returns the tag names in insertion order.
func (m MetaTags) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// KeywordResult is the aggregate match data for one normalized keyword
type KeywordResult struct {
	Keyword    string   `json:"keyword"`
	MatchCount int      `json:"match_count"`
	FoundIn    []string `json:"found_in"`
}

// ReportFile is a persisted report or page body inspected by the keyword counter
type ReportFile struct {
	// ID is "<directory name>/<file name>", used in the output spreadsheet.
	ID   string `json:"id"`
	Path string `json:"path"`
}
