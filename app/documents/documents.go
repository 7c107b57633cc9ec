package documents

// Document is one unit of loaded text: a PDF page, a CSV row or a web page.
// Documents are never mutated after loading.
type Document struct {
	Content  string
	Source   string
	Metadata map[string]any
}

type Status string

const (
	StatusLoaded  Status = "loaded"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// SourceResult records the outcome of loading one configured source, so
// ingestion completeness can be inspected programmatically instead of only
// showing up as log lines.
type SourceResult struct {
	Kind   string
	Source string
	Status Status
	Reason string
	Count  int
}

type Manifest struct {
	Results []SourceResult
}

func (m *Manifest) add(kind, source string, status Status, reason string, count int) {
	m.Results = append(m.Results, SourceResult{
		Kind:   kind,
		Source: source,
		Status: status,
		Reason: reason,
		Count:  count,
	})
}

func (m Manifest) Loaded() int {
	n := 0
	for _, r := range m.Results {
		if r.Status == StatusLoaded {
			n += r.Count
		}
	}
	return n
}

func (m Manifest) Incomplete() []SourceResult {
	var out []SourceResult
	for _, r := range m.Results {
		if r.Status != StatusLoaded {
			out = append(out, r)
		}
	}
	return out
}
