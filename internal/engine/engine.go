// Package engine implements the parallel iterative-deepening search: a
// process-wide EngineState record for cooperative cancellation and a
// best-move slot, and the root driver that fans alpha-beta out across
// worker goroutines, one per root move.
package engine

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	logging "github.com/op/go-logging"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelchess/uciengine/internal/applog"
	"github.com/kestrelchess/uciengine/internal/board"
)

const (
	flagStop uint32 = 1 << iota
	flagDebug
)

// Infinity bounds the alpha-beta window; it is wide enough that no
// material-only evaluation can reach it.
const Infinity = 1 << 20

// EngineState is the process-wide record shared between the UCI
// dispatcher and the search goroutines: a cooperative-cancellation
// flag, a debug-output flag, and the latest published best move. It is
// created once at startup and lives for the life of the process.
type EngineState struct {
	flags atomic.Uint32

	mu       sync.Mutex
	bestMove board.Move
	bestCP   int
}

// NewEngineState returns a freshly cleared EngineState.
func NewEngineState() *EngineState {
	return &EngineState{}
}

// Stop reports whether cooperative cancellation has been requested.
func (s *EngineState) Stop() bool { return s.flags.Load()&flagStop != 0 }

// SetStop requests cancellation; search goroutines observe it between
// root moves and on return from every alphaBeta call.
func (s *EngineState) SetStop() { s.flags.Or(flagStop) }

// ClearStop clears cancellation, done by the search itself when a new
// search begins.
func (s *EngineState) ClearStop() { s.flags.And(^flagStop) }

// Debug reports whether verbose output has been requested.
func (s *EngineState) Debug() bool { return s.flags.Load()&flagDebug != 0 }

// SetDebug toggles verbose output, set by the dispatcher's "debug" command.
func (s *EngineState) SetDebug(on bool) {
	if on {
		s.flags.Or(flagDebug)
	} else {
		s.flags.And(^flagDebug)
	}
}

// BestMove returns the best move published so far by the running (or
// most recently finished) search.
func (s *EngineState) BestMove() board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestMove
}

func (s *EngineState) publish(m board.Move, score int) {
	s.mu.Lock()
	s.bestMove = m
	s.bestCP = score
	s.mu.Unlock()
}

// Limits bounds a single search, mirroring the UCI "go" subcommands
// that actually influence this engine (see internal/uci).
type Limits struct {
	Depth       int
	MoveTime    time.Duration
	Infinite    bool
	SearchMoves []board.Move
}

// Info is reported once per completed iterative-deepening depth.
type Info struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// Engine drives the search: it owns the shared EngineState and the
// worker count used to parallelize each depth's root moves.
type Engine struct {
	state   *EngineState
	Workers int
	OnInfo  func(Info)

	rngMu sync.Mutex
	rng   *rand.Rand

	nodes atomic.Uint64

	log *logging.Logger
}

// New creates an Engine with workers parallel search slots (0 means
// one per logical CPU).
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		state:   NewEngineState(),
		Workers: workers,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     applog.Get("engine"),
	}
}

// State returns the engine's shared cancellation/best-move record.
func (e *Engine) State() *EngineState { return e.state }

// SeedTieBreak fixes the random source used to break equal-weight root
// moves, for reproducible tests.
func (e *Engine) SeedTieBreak(seed int64) {
	e.rngMu.Lock()
	e.rng = rand.New(rand.NewSource(seed))
	e.rngMu.Unlock()
}

// Stop requests cancellation of any running search.
func (e *Engine) Stop() { e.state.SetStop() }

// Search runs iterative deepening from b's current position up to
// limits' bound, publishing the best move at every completed depth,
// and returns the final published best move. b is never mutated: each
// worker operates on its own copy.
func (e *Engine) Search(b *board.Board, limits Limits) board.Move {
	e.state.ClearStop()
	e.nodes.Store(0)

	maxDepth := limits.Depth
	if limits.Infinite || maxDepth <= 0 {
		maxDepth = 255
	}

	if limits.MoveTime > 0 {
		timer := time.AfterFunc(limits.MoveTime, e.state.SetStop)
		defer timer.Stop()
	}

	root := b.GenerateLegalMoves().Slice()
	moves := selectRootMoves(root, limits.SearchMoves)
	if len(moves) == 0 {
		e.log.Warning("search requested with no legal root moves")
		return board.NoMove
	}

	start := time.Now()

	for depth := 1; depth <= maxDepth; depth++ {
		if e.state.Stop() {
			break
		}

		best, score := e.searchRootDepth(b, moves, depth)
		if e.state.Stop() {
			break
		}

		e.state.publish(best, score)

		if e.OnInfo != nil {
			e.OnInfo(Info{
				Depth: depth,
				Score: score,
				Nodes: e.nodes.Load(),
				Time:  time.Since(start),
				Move:  best,
			})
		}
	}

	return e.state.BestMove()
}

// selectRootMoves restricts root to the searchmoves list when given,
// preserving MoveGen's generation order otherwise.
func selectRootMoves(root []board.Move, restrict []board.Move) []board.Move {
	if len(restrict) == 0 {
		out := make([]board.Move, len(root))
		copy(out, root)
		return out
	}
	allowed := make(map[board.Move]bool, len(restrict))
	for _, m := range restrict {
		allowed[m] = true
	}
	out := make([]board.Move, 0, len(restrict))
	for _, m := range root {
		if allowed[m] {
			out = append(out, m)
		}
	}
	return out
}

// searchRootDepth explores every root move in moves to depth on its
// own worker board copy, in parallel, and returns the best move and
// its score, breaking ties uniformly at random among equal-best
// moves. moves is reordered by descending weight for the caller's
// next iteration (better moves get explored, and therefore pruned
// against, earlier).
func (e *Engine) searchRootDepth(b *board.Board, moves []board.Move, depth int) (board.Move, int) {
	var mu sync.Mutex
	alpha, beta := -Infinity, Infinity
	scores := make([]int, len(moves))

	g := new(errgroup.Group)
	g.SetLimit(e.Workers)

	for i := range moves {
		i := i
		m := moves[i]
		g.Go(func() error {
			if e.state.Stop() {
				return nil
			}

			worker := b.Copy()
			extended := worker.Apply(m)

			mu.Lock()
			a, bt := alpha, beta
			mu.Unlock()

			score := -e.alphaBeta(worker, -bt, -(a - 1), depth)
			worker.Undo(extended)
			scores[i] = score

			mu.Lock()
			if score > alpha {
				alpha = score
			}
			mu.Unlock()

			return nil
		})
	}
	_ = g.Wait()

	for i := range moves {
		moves[i] = moves[i].WithWeight(clampWeight(scores[i]))
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Weight() > moves[j].Weight()
	})

	return e.pickBest(moves)
}

// pickBest returns a uniformly random move among those sharing the
// highest weight (moves must already be sorted by weight descending).
func (e *Engine) pickBest(moves []board.Move) (board.Move, int) {
	if len(moves) == 0 {
		return board.NoMove, 0
	}
	best := moves[0].Weight()
	n := 1
	for n < len(moves) && moves[n].Weight() == best {
		n++
	}

	e.rngMu.Lock()
	choice := moves[e.rng.Intn(n)]
	e.rngMu.Unlock()

	return choice, int(best)
}

func clampWeight(score int) int8 {
	if score >= Infinity {
		return 127
	}
	if score <= -Infinity {
		return -127
	}
	if score > 126 {
		return 126
	}
	if score < -126 {
		return -126
	}
	return int8(score)
}
