package batch

// Status is the outcome of one (input, category) pair.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusFailed
	StatusAbandoned
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	case StatusAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Result records one pair. A missing input produces a single result with an
// empty Category.
type Result struct {
	Input      string
	Category   string
	OutputPath string
	Status     Status
	Err        error
}

// Report collects every result of a run in processing order.
type Report struct {
	Results []Result
	// QRPath is set when a store listing QR was written.
	QRPath string
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

func (r *Report) merge(other Report) {
	r.Results = append(r.Results, other.Results...)
}

func (r Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func (r Report) OK() int { return r.count(StatusOK) }

func (r Report) Missing() int { return r.count(StatusMissing) }

// Failed counts failed and abandoned pairs.
func (r Report) Failed() int { return r.count(StatusFailed) + r.count(StatusAbandoned) }

// HasFailures reports whether any pair was not produced for a reason other
// than a missing input.
func (r Report) HasFailures() bool { return r.Failed() > 0 }
