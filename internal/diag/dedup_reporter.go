package diag

type dedupKey struct {
	code Code
	site Site
	msg  string
}

// DedupReporter forwards the first diagnostic per (code, site, message) and
// counts the rest.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary Site, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, site: primary, msg: msg}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed is the number of duplicates dropped so far.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
