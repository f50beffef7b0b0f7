package pbxproj

// Outcome summarizes a whole plan run.
type Outcome int

const (
	Success  Outcome = iota // no step skipped, at least one applied
	UpToDate                // no step skipped, nothing to do
	Partial                 // some steps applied, some skipped
	Failure                 // some steps skipped and none applied
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case UpToDate:
		return "up-to-date"
	case Partial:
		return "partial"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Plan is an ordered list of steps applied to one buffer.
type Plan struct {
	Name  string
	Steps []Step
}

// Report collects the per-step results of a plan run.
type Report struct {
	Plan    string   `json:"plan"`
	Results []Result `json:"steps"`
	Outcome Outcome  `json:"outcome"`
}

// Changed reports whether any step modified the buffer.
func (r Report) Changed() bool {
	for _, res := range r.Results {
		if res.Status == Applied {
			return true
		}
	}
	return false
}

// Count returns how many results have status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Run applies every step in order. Steps are independent: a skipped step
// does not stop the ones after it.
func (p Plan) Run(content string) (string, Report) {
	rep := Report{Plan: p.Name, Results: make([]Result, 0, len(p.Steps))}
	for _, st := range p.Steps {
		var res Result
		content, res = st.Apply(content)
		rep.Results = append(rep.Results, res)
	}
	rep.Outcome = outcomeOf(rep)
	return content, rep
}

func outcomeOf(r Report) Outcome {
	skipped := r.Count(Skipped) > 0
	switch {
	case skipped && r.Changed():
		return Partial
	case skipped:
		return Failure
	case r.Changed():
		return Success
	default:
		return UpToDate
	}
}
