package searcher

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"

	"ismcts/game"
)

// actionStats tracks one edge of the tree.
//
// availability counts the iterations in which the move was legal in the
// determinization seen at this node, whether or not it was chosen; visits
// counts only the iterations that chose it. rewards accumulates the
// terminal reward from the acting player's perspective over those visits.
type actionStats struct {
	visits       int
	availability int
	rewards      float64
}

// node represents one information set for one acting player. Statistics are
// guarded by the embedded mutex so that parallel workers can share the tree.
type node struct {
	sync.Mutex
	player   game.Player
	visits   int
	rewards  map[game.Player]float64
	order    []game.Move // moves in first-seen order; fixes tie-breaking
	stats    map[game.Move]*actionStats
	children map[game.Move]*node
}

func newNode(player game.Player) *node {
	return &node{
		player:   player,
		rewards:  make(map[game.Player]float64),
		stats:    make(map[game.Move]*actionStats),
		children: make(map[game.Move]*node),
	}
}

// tree owns the root of one search. Nodes are only ever added, never removed
// or merged; size counts them for diagnostics.
type tree struct {
	root *node
	size atomic.Int64
}

func newTree(player game.Player) *tree {
	t := &tree{root: newNode(player)}
	t.size.Add(1)
	return t
}

// selectOrExpand records availability for every legal move and returns the
// move to follow. If any legal move has never been visited, one of them is
// picked uniformly at random and untried is true: expansion takes over.
// Otherwise the move maximizing the availability-corrected UCB score is
// returned, ties broken by first-seen order.
func (n *node) selectOrExpand(legal []game.Move, c float64, rng *rand.Rand) (mov game.Move, untried bool) {
	n.Lock()
	defer n.Unlock()

	unvisited := n.recordAvailability(legal)
	if len(unvisited) > 0 {
		return unvisited[rng.Intn(len(unvisited))], true
	}

	inLegal := make(map[game.Move]bool, len(legal))
	for _, m := range legal {
		inLegal[m] = true
	}

	policy := ucb{c: c}
	var best game.Move
	bestScore := math.Inf(-1)
	for _, m := range n.order {
		if !inLegal[m] {
			continue
		}
		as := n.stats[m]
		score := policy.evaluate(as.rewards, float64(as.visits), float64(as.availability))
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best, false
}

// recordAvailability bumps the availability count of every legal move,
// registering first-seen moves along the way, and returns the legal moves
// with zero visits.
func (n *node) recordAvailability(legal []game.Move) []game.Move {
	var unvisited []game.Move
	for _, m := range legal {
		as, ok := n.stats[m]
		if !ok {
			as = &actionStats{}
			n.stats[m] = as
			n.order = append(n.order, m)
		}
		as.availability++
		if as.visits == 0 {
			unvisited = append(unvisited, m)
		}
	}
	return unvisited
}

// childFor returns the child reached by mov, or nil if the move has not been
// expanded at this node.
func (n *node) childFor(mov game.Move) *node {
	n.Lock()
	defer n.Unlock()

	return n.children[mov]
}

// addChild creates the child for mov acting as player. If a racing worker
// already created it, the existing child is returned and created is false.
func (n *node) addChild(mov game.Move, player game.Player) (child *node, created bool) {
	n.Lock()
	defer n.Unlock()

	if child, ok := n.children[mov]; ok {
		return child, false
	}
	child = newNode(player)
	n.children[mov] = child
	return child, true
}

// update folds one iteration's terminal rewards into the node. mov is the
// move taken from this node on the iteration's path, or nil when the node
// ended the path (expanded leaf or terminal stop).
func (n *node) update(mov game.Move, rewards map[game.Player]float64) {
	n.Lock()
	defer n.Unlock()

	n.visits++
	for p, r := range rewards {
		n.rewards[p] += r
	}
	if mov != nil {
		as := n.stats[mov]
		as.visits++
		as.rewards += rewards[n.player]
	}
}

// bestMove returns the most-visited move, ties broken by first-seen order.
func (n *node) bestMove() (game.Move, bool) {
	n.Lock()
	defer n.Unlock()

	var best game.Move
	bestVisits := -1
	for _, m := range n.order {
		if as := n.stats[m]; as.visits > bestVisits {
			best = m
			bestVisits = as.visits
		}
	}
	return best, best != nil
}

// MoveStats is one row of the root statistics table.
type MoveStats struct {
	Move         game.Move
	Visits       int
	Availability int
	MeanReward   float64
}

// moveStats snapshots per-move statistics in first-seen order.
func (n *node) moveStats() []MoveStats {
	n.Lock()
	defer n.Unlock()

	stats := make([]MoveStats, 0, len(n.order))
	for _, m := range n.order {
		as := n.stats[m]
		mean := 0.0
		if as.visits > 0 {
			mean = as.rewards / float64(as.visits)
		}
		stats = append(stats, MoveStats{
			Move:         m,
			Visits:       as.visits,
			Availability: as.availability,
			MeanReward:   mean,
		})
	}
	return stats
}
