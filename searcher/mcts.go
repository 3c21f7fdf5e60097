// Package searcher implements Information-Set Monte Carlo Tree Search:
// Monte Carlo tree search over information sets rather than concrete states.
// Each iteration samples one determinization of the hidden information from
// the root, descends the shared tree through it, expands at most one node,
// plays out to a terminal state and backs the rewards up along the path.
// Moves that are legal in some determinizations but not others are handled
// by the availability-corrected UCB selection rule.
package searcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ismcts/game"
)

var (
	// ErrInvalidConfig reports an unusable searcher configuration.
	ErrInvalidConfig = errors.New("searcher: invalid configuration")
	// ErrNoIterations reports a budget exhausted (or cancelled) before a
	// single iteration completed. The tree holds no statistics to decide
	// from; this is distinct from a terminal root, which is not an error.
	ErrNoIterations = errors.New("searcher: no iterations completed within budget")
)

// Result is the outcome of one Search call.
type Result struct {
	// Move is the recommended move: the most-visited move at the root.
	Move game.Move
	// NoDecision reports that the root state is terminal and there is
	// nothing to decide. Move is nil in that case.
	NoDecision bool
	// Iterations is the number of completed iterations.
	Iterations int64
	// Stats is the root statistics table in first-seen move order.
	Stats []MoveStats
	// Metrics holds timing counters when collection is enabled.
	Metrics SearchMetrics
}

type Option func(m *MCTS)

// MCTS runs availability-corrected information-set tree search. A zero
// value is not usable; construct with NewMCTS.
type MCTS struct {
	goroutines  int
	iterations  int
	duration    time.Duration
	exploration float64
	seed        uint64
	seeded      bool
	rollout     game.Rollout
	cutoff      int
	evaluate    game.Evaluate
	reuse       bool
	metrics     MetricsCollector

	tree *tree
}

// WithIterations fixes the budget to a number of iterations.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration fixes the budget to a wall-clock duration.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithGoroutines shares the tree among the given number of workers. The
// per-node statistics stay consistent under concurrent iteration; single
// worker searches are deterministic under a fixed seed.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithExploration overrides the UCB exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithSeed seeds the search randomness for reproducible runs. Worker i
// derives its own generator from seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

// WithRollout replaces the uniform-random rollout policy.
func WithRollout(rollout game.Rollout) Option {
	return func(m *MCTS) {
		if rollout != nil {
			m.rollout = rollout
		}
	}
}

// WithCutoff truncates rollouts after depth moves and scores the reached
// state with evaluate instead of playing to the end.
func WithCutoff(depth int, evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
			m.evaluate = evaluate
		}
	}
}

// WithTreeReuse keeps the tree across Search calls. The caller must report
// every move played since the previous search via Advance so the kept root
// tracks the game; a move without a matching child resets the tree.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

// WithMetrics enables collection of timing counters on every search.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		goroutines:  1,
		exploration: DefaultExploration,
		rollout:     RandomRollout,
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "must specify search iterations or duration")
	}
	if m.cutoff > 0 && m.evaluate == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "rollout cutoff requires an evaluation function")
	}
	if !m.seeded {
		m.seed = uint64(time.Now().UnixNano())
	}
	return m, nil
}

// Search runs the iteration budget from state and returns the recommended
// move. ctx cancellation and deadline are honored between iterations, never
// mid-iteration, so the accumulated statistics always reflect whole
// iterations and extraction still succeeds after an early stop.
func (m *MCTS) Search(ctx context.Context, state game.State) (Result, error) {
	if state.IsTerminal() {
		return Result{NoDecision: true}, nil
	}

	t := m.findTree(state)

	m.metrics.Start()
	var completed atomic.Int64
	if m.iterations > 0 {
		m.iterate(ctx, t, state, &completed)
	} else {
		m.countdown(ctx, t, state, &completed)
	}

	if completed.Load() == 0 {
		return Result{}, errors.Wrapf(ErrNoIterations, "budget %s", m.budget())
	}

	mov, ok := t.root.bestMove()
	if !ok {
		return Result{}, errors.Wrap(ErrNoIterations, "root has no move statistics")
	}
	return Result{
		Move:       mov,
		Iterations: completed.Load(),
		Stats:      t.root.moveStats(),
		Metrics:    m.metrics.Complete(),
	}, nil
}

// Advance moves the kept root along the edge of a played move. A no-op
// unless tree reuse is enabled; an unexplored move discards the tree.
func (m *MCTS) Advance(mov game.Move) {
	if !m.reuse || m.tree == nil {
		return
	}
	child := m.tree.root.childFor(mov)
	if child == nil {
		m.tree = nil
		return
	}
	m.tree.root = child
}

// NodeCount returns the number of nodes in the current tree.
func (m *MCTS) NodeCount() int64 {
	if m.tree == nil {
		return 0
	}
	return m.tree.size.Load()
}

func (m *MCTS) findTree(state game.State) *tree {
	if m.reuse && m.tree != nil && m.tree.root.player == state.Player() {
		m.metrics.SetTreeReused(true)
		return m.tree
	}
	m.tree = newTree(state.Player())
	m.metrics.SetTreeReused(false)
	return m.tree
}

func (m *MCTS) budget() string {
	if m.iterations > 0 {
		return fmt.Sprintf("%d iterations", m.iterations)
	}
	return m.duration.String()
}

// iterate runs a fixed number of iterations over a worker pool.
func (m *MCTS) iterate(ctx context.Context, t *tree, root game.State, completed *atomic.Int64) {
	task := make(chan struct{}, m.iterations)
	for i := 0; i < m.iterations; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		seed := m.seed + uint64(i)
		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			for range task {
				if ctx.Err() != nil {
					return
				}
				m.simulate(t, root, rng)
				completed.Add(1)
				m.metrics.AddIteration()
			}
		}()
	}
	wg.Wait()
}

// countdown runs iterations until the duration budget elapses.
func (m *MCTS) countdown(ctx context.Context, t *tree, root game.State, completed *atomic.Int64) {
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		seed := m.seed + uint64(i)
		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			for time.Since(start) < m.duration && ctx.Err() == nil {
				m.simulate(t, root, rng)
				completed.Add(1)
				m.metrics.AddIteration()
			}
		}()
	}
	wg.Wait()
}

// simulate runs one iteration: determinize, select, expand, play out,
// back up.
func (m *MCTS) simulate(t *tree, rootState game.State, rng *rand.Rand) {
	// Sample one concrete state consistent with the searcher's view
	state := rootState.Determinize(rootState.Player(), rng)

	node := t.root
	var path []pathStep
	for {
		if state.IsTerminal() {
			path = append(path, pathStep{node: node})
			backup(path, state.Rewards())
			return
		}

		mov, untried := node.selectOrExpand(legalMoves(state), m.exploration, rng)
		path = append(path, pathStep{node: node, mov: mov})
		state = state.Play(mov)

		if untried { // Expand: at most one new node per iteration
			child, created := node.addChild(mov, actingPlayer(state))
			if created {
				t.size.Add(1)
				m.metrics.AddExpansion()
			}
			path = append(path, pathStep{node: child})
			backup(path, m.playout(state, rng))
			return
		}

		child := node.childFor(mov)
		if child == nil {
			// Visited moves always have a child: expansion precedes the
			// first backed-up visit.
			panic("searcher: selected move has no child node")
		}
		node = child
	}
}

// playout plays the rollout policy to a terminal state, or to the cutoff
// depth when one is configured, and returns the reward vector.
func (m *MCTS) playout(state game.State, rng *rand.Rand) map[game.Player]float64 {
	depth := 0
	for !state.IsTerminal() {
		if m.cutoff > 0 && depth >= m.cutoff {
			return m.evaluate(state)
		}
		mov := m.rollout(state, rng)
		state = state.Play(mov)
		depth++
	}
	m.metrics.AddFullPlayout()
	return state.Rewards()
}

// pathStep is one element of an iteration's search path. mov is nil on the
// final step.
type pathStep struct {
	node *node
	mov  game.Move
}

// backup walks the path leaf to root, folding the terminal rewards into
// every node and chosen move. Availability counts were already bumped
// during selection.
func backup(path []pathStep, rewards map[game.Player]float64) {
	for i := len(path) - 1; i >= 0; i-- {
		path[i].node.update(path[i].mov, rewards)
	}
}

// legalMoves fails fast on a game model that reports no legal moves for a
// non-terminal state, before the empty move list can corrupt statistics.
func legalMoves(state game.State) []game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		log.Error().Msgf("game model returned no legal moves for non-terminal state (player %s)", state.Player())
		panic("searcher: no legal moves for non-terminal state")
	}
	return moves
}

// actingPlayer tolerates terminal successors, whose acting player is
// undefined.
func actingPlayer(state game.State) game.Player {
	if state.IsTerminal() {
		return ""
	}
	return state.Player()
}
