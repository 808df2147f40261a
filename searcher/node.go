package searcher

import (
	"mctsbot/game"

	"golang.org/x/exp/rand"
)

// node is one explored position in the search tree. The tree owns its
// children top-down; parent is a non-owning back-pointer used only by
// backpropagation, so releasing the root releases the whole tree.
//
// A node never stores its game state. The state belonging to a node is
// rebuilt by replaying the moves along its path onto the root state.
type node struct {
	parent   *node
	move     game.Move // move that led here from parent; nil on the root
	children []*node
	untried  []game.Move
	wins     int
	visits   int
}

func newNode(parent *node, move game.Move, moves []game.Move) *node {
	return &node{
		parent:   parent,
		move:     move,
		children: make([]*node, 0, len(moves)),
		untried:  append([]game.Move(nil), moves...),
	}
}

// expanded reports whether every legal move has been turned into a child.
func (n *node) expanded() bool {
	return len(n.untried) == 0
}

// bestChild returns the child maximizing the UCT score, or nil when no
// child qualifies. A child qualifies only when its score strictly exceeds
// the running best, which starts at zero: ties keep the earlier child, and
// a score of exactly zero never triggers descent.
func (n *node) bestChild(c float64) *node {
	policy := newUCT(c, float64(n.visits))

	best := 0.0
	var pick *node
	for _, child := range n.children {
		score := policy.evaluate(float64(child.wins), float64(child.visits))
		if score > best {
			best = score
			pick = child
		}
	}
	return pick
}

// expand materializes one untried move, chosen uniformly at random, as a
// new child and returns it with its state. The caller must have checked
// that untried moves remain.
func (n *node) expand(rules game.Rules, state game.State, rng *rand.Rand) (*node, game.State) {
	i := rng.Intn(len(n.untried))
	move := n.untried[i]
	n.untried[i] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	childState := rules.Play(state, move)
	child := newNode(n, move, rules.LegalMoves(childState))
	n.children = append(n.children, child)
	return child, childState
}

// backup walks the parent chain up to and including the root, crediting
// one playout to every node on the path.
func (n *node) backup(won bool) {
	for p := n; p != nil; p = p.parent {
		p.visits++
		if won {
			p.wins++
		}
	}
}

// winRate is the empirical win ratio used for the final move choice.
func (n *node) winRate() float64 {
	return float64(n.wins) / float64(n.visits)
}

// mostWinning returns the child with the greatest win rate. Later children
// win ties, and nil is returned only when the node has no children.
func (n *node) mostWinning() *node {
	best := 0.0
	var pick *node
	for _, child := range n.children {
		if rate := child.winRate(); rate >= best {
			best = rate
			pick = child
		}
	}
	return pick
}
