package skemajs

// Diag carries non-fatal findings produced during conversion.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
	Issues() Issues
}

type diag struct{ issues Issues }

func (d *diag) HasWarnings() bool { return len(d.issues) > 0 }

func (d *diag) Warnings() []string {
	ws := make([]string, len(d.issues))
	for i, it := range d.issues {
		ws[i] = it.Message
	}
	return ws
}

func (d *diag) Issues() Issues { return append(Issues(nil), d.issues...) }

func (d *diag) add(it Issue) { d.issues = AppendIssues(d.issues, it) }
