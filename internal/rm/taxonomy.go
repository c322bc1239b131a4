package rm

import "fmt"

// Level selects the taxonomy depth used to group repeat features.
type Level string

const (
	ByClass  Level = "class"
	ByFamily Level = "family"
	ByName   Level = "name"
)

// ParseLevel validates a taxonomy level flag value.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case ByClass, ByFamily, ByName:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown taxonomy level %q: expected class, family or name", s)
}

// Taxon returns the grouping key of f at the requested level. Family
// keys are qualified by class, matching how RepeatMasker writes them.
func (f Feature) Taxon(level Level) string {
	switch level {
	case ByFamily:
		return f.Class + "/" + f.Family
	case ByName:
		return f.Name
	default:
		return f.Class
	}
}
