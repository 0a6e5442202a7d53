package taxonomy

// Match is the result of matching a clause against the taxonomy.
type Match struct {
	Aspect  string // aspect name
	Trigger string // the keyword that fired
}

// Match scans a clause for keyword occurrences across all aspects.
// Keywords are matched case-insensitively on whole-word boundaries; the
// longest matching keyword string wins, and equal lengths resolve to the
// earlier aspect (then earlier keyword) in taxonomy order, which keeps
// the result deterministic.
func (t *Taxonomy) Match(clause string) (Match, bool) {
	var best Match
	bestLen := 0
	for i, a := range t.aspects {
		for j, kw := range a.Keywords {
			if len(kw) <= bestLen {
				continue
			}
			if t.patterns[i][j].MatchString(clause) {
				best = Match{Aspect: a.Name, Trigger: kw}
				bestLen = len(kw)
			}
		}
	}
	return best, bestLen > 0
}
