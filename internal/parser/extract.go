package parser

import (
	"strconv"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-report-go/internal/errors"
	"github.com/lgbarn/pgn-report-go/internal/grammar"
)

// Extract converts the parse tree of a game into a chess.Game.
//
// The tree is expected to come from a successful grammar.ParseGame; a
// missing or misplaced node is reported as an *errors.ExtractionError and
// means the grammar and the extractor disagree.
func Extract(root *grammar.Node) (*chess.Game, error) {
	if root == nil || root.Rule != grammar.RuleGame {
		return nil, &pgnerrors.ExtractionError{Element: "game"}
	}
	moveList := root.Child(grammar.RuleMoveList)
	if moveList == nil {
		return nil, &pgnerrors.ExtractionError{Element: "move list"}
	}
	resultNode := root.Child(grammar.RuleResult)
	if resultNode == nil {
		return nil, &pgnerrors.ExtractionError{Element: "game result"}
	}

	game := &chess.Game{}

	tagNodes := root.ChildrenOf(grammar.RuleTag)
	if len(tagNodes) > 0 {
		game.Tags = make([]chess.Tag, 0, len(tagNodes))
	}
	for _, n := range tagNodes {
		tag, err := extractTag(n)
		if err != nil {
			return nil, err
		}
		game.Tags = append(game.Tags, tag)
	}

	pairNodes := moveList.ChildrenOf(grammar.RuleMovePair)
	if len(pairNodes) > 0 {
		game.Moves = make([]chess.MovePair, 0, len(pairNodes))
	}
	for _, n := range pairNodes {
		pair, err := extractMovePair(n)
		if err != nil {
			return nil, err
		}
		game.Moves = append(game.Moves, pair)
	}

	game.Result = resultNode.Value
	if !chess.IsResult(game.Result) {
		return nil, &pgnerrors.ExtractionError{Element: "game result"}
	}

	return game, nil
}

// extractTag splits a tag node into its name and value.
func extractTag(n *grammar.Node) (chess.Tag, error) {
	key := n.Child(grammar.RuleWord)
	if key == nil {
		return chess.Tag{}, &pgnerrors.ExtractionError{Element: "tag name"}
	}
	value := n.Child(grammar.RuleTagValue)
	if value == nil {
		return chess.Tag{}, &pgnerrors.ExtractionError{Element: "tag value"}
	}
	return chess.Tag{Name: key.Value, Value: value.Value}, nil
}

// slotKind is what a move pair child holds after the first move.
type slotKind int

const (
	slotNotation slotKind = iota
	slotComment
	slotOther
)

// slotOf classifies a move pair child by the rule that produced it.
func slotOf(n *grammar.Node) slotKind {
	switch n.Rule {
	case grammar.RuleMove:
		return slotNotation
	case grammar.RuleComment:
		return slotComment
	}
	return slotOther
}

// pairState tracks how far through a move pair extraction has got.
type pairState int

const (
	afterWhite pairState = iota
	afterWhiteComment
	afterBlack
	afterBlackComment
)

// extractMovePair walks the children of a move pair node:
//
//	number white [comment] [black [comment]]
//
// Each child after the white move is routed by its slot kind, so a comment
// always attaches to the move before it.
func extractMovePair(n *grammar.Node) (chess.MovePair, error) {
	var pair chess.MovePair
	children := n.Children

	if len(children) > 0 && children[0].Rule == grammar.RuleMoveNumber {
		// Digits only, so this fails only on overflow. Such a number is
		// left as 0 and writers fall back to the pair's position.
		if n, err := strconv.Atoi(children[0].Value); err == nil {
			pair.Number = n
		}
		children = children[1:]
	}
	if len(children) == 0 || slotOf(children[0]) != slotNotation {
		return pair, &pgnerrors.ExtractionError{Element: "move"}
	}
	pair.White.Text = children[0].Value

	state := afterWhite
	for _, c := range children[1:] {
		switch {
		case slotOf(c) == slotComment && state == afterWhite:
			pair.White.Comment = &chess.Comment{Text: c.Value}
			state = afterWhiteComment
		case slotOf(c) == slotNotation && (state == afterWhite || state == afterWhiteComment):
			pair.Black = &chess.Move{Text: c.Value}
			state = afterBlack
		case slotOf(c) == slotComment && state == afterBlack:
			pair.Black.Comment = &chess.Comment{Text: c.Value}
			state = afterBlackComment
		default:
			return pair, &pgnerrors.ExtractionError{Element: c.Rule.Describe(), Unexpected: true}
		}
	}

	return pair, nil
}
