package models

// RoleTags are the options offered by the role multi-select, in display order.
var RoleTags = []string{
	"Software Engineering",
	"Data Science",
	"Machine Learning",
	"Cloud Computing",
}

func IsRoleTag(tag string) bool {
	for _, t := range RoleTags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeRoleTags drops blanks and duplicates while keeping selection order.
func NormalizeRoleTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
