// Package grammar defines the structural rules of a PGN game and matches
// text against them, producing a parse tree or a *errors.SyntaxError.
package grammar

// Rule identifies a grammar rule. Every node in a parse tree is tagged with
// the rule that produced it.
type Rule int

const (
	RuleWord       Rule = iota // run of characters other than whitespace and '"'
	RuleTagValue               // quoted tag value
	RuleTag                    // [Name "Value"]
	RuleComment                // { text }
	RuleMoveNumber             // 12.
	RuleMove                   // SAN move, e.g. Nbd7, exf5, O-O, Qe8#
	RuleMovePair               // move number, move, then optional comment/move/comment
	RuleMoveList               // zero or more move pairs
	RuleResult                 // 1-0, 0-1, 1/2-1/2 or *
	RuleGame                   // tags, move list, result
)

// ruleNames maps rules to their string representations.
var ruleNames = [...]string{
	RuleWord:       "word",
	RuleTagValue:   "tag_value",
	RuleTag:        "tag",
	RuleComment:    "comment",
	RuleMoveNumber: "move_number",
	RuleMove:       "move",
	RuleMovePair:   "move_pair",
	RuleMoveList:   "move_list",
	RuleResult:     "game_result",
	RuleGame:       "game",
}

// ruleDescriptions are used in syntax error expectations.
var ruleDescriptions = [...]string{
	RuleWord:       "word",
	RuleTagValue:   "quoted tag value",
	RuleTag:        "tag",
	RuleComment:    "comment",
	RuleMoveNumber: "move number",
	RuleMove:       "move",
	RuleMovePair:   "move pair",
	RuleMoveList:   "move list",
	RuleResult:     "game result",
	RuleGame:       "game",
}

// String returns the string representation of a rule.
func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "unknown"
}

// Describe returns a human readable name for the rule.
func (r Rule) Describe() string {
	if r >= 0 && int(r) < len(ruleDescriptions) {
		return ruleDescriptions[r]
	}
	return "unknown"
}

// RuleByName returns the rule whose String form is name.
func RuleByName(name string) (Rule, bool) {
	for r, n := range ruleNames {
		if n == name {
			return Rule(r), true
		}
	}
	return 0, false
}

// RuleNames returns the String form of every rule in declaration order.
func RuleNames() []string {
	return append([]string(nil), ruleNames[:]...)
}
