package models

// Profile is a named build profile declared in a pom.xml.
type Profile struct {
	ID              string `json:"id"`
	ActiveByDefault bool   `json:"activeByDefault"`
}

// Equal compares profiles by id only.
func (p Profile) Equal(other Profile) bool {
	return p.ID == other.ID
}

// DefaultProfileIDs returns the ids of profiles marked activeByDefault, in declaration order.
func DefaultProfileIDs(profiles []Profile) []string {
	var ids []string
	for _, p := range profiles {
		if p.ActiveByDefault {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
