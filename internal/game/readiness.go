package game

// AllCommitted reports whether every team has committed its carrier.
// An ocean without teams is trivially ready.
func AllCommitted(teams []Team) bool {
	for _, t := range teams {
		if !t.Committed {
			return false
		}
	}
	return true
}
