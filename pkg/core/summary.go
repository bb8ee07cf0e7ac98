package core

import "actioncore/pkg/summary"

// Summary returns a new job summary builder writing to this step's summary
// file.
func (a *Action) Summary() *summary.Summary {
	return summary.New(a.files)
}
