package chess

// Tag is a single tag pair from the game header, e.g. [Event "Casual Game"].
type Tag struct {
	Name  string
	Value string
}

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}
