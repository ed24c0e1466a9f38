// Package uci implements the text protocol described in the external
// interfaces section: a line-oriented dispatcher reading commands from
// standard input and writing responses to standard output.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	logging "github.com/op/go-logging"

	"github.com/kestrelchess/uciengine/internal/applog"
	"github.com/kestrelchess/uciengine/internal/board"
	"github.com/kestrelchess/uciengine/internal/engine"
)

// UCI holds the dispatcher's session state: the current board and the
// engine it drives.
type UCI struct {
	eng *engine.Engine
	b   *board.Board

	searchDone  chan struct{}
	bestmoveOut sync.Once

	out io.Writer
	log *logging.Logger
}

// New creates a dispatcher wired to eng, starting from the default position.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		eng: eng,
		b:   board.NewBoard(),
		out: os.Stdout,
		log: applog.Get("uci"),
	}
}

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if u.dispatch(line) {
			return
		}
	}
}

// dispatch handles a single input line, returning true when the loop
// should terminate (a "quit" command).
func (u *UCI) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		fmt.Fprintln(u.out, "readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		u.handleStop()
	case "ponderhit", "setoption", "register":
		// Stubbed acknowledgments: accepted, no effect on search.
	case "debug":
		u.handleDebug(args)
	case "printboard":
		fmt.Fprintln(u.out, u.b.String())
	case "fen":
		fmt.Fprintln(u.out, u.b.FormatFEN())
	case "perft":
		u.handlePerft(args)
	case "quit":
		u.handleStop()
		return true
	default:
		u.log.Warningf("unrecognized command %q", cmd)
	}
	return false
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name kestrelchess")
	fmt.Fprintln(u.out, "id author the kestrelchess project")
	fmt.Fprintln(u.out, "option name Threads type spin default", u.eng.Workers, "min 1 max 512")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.b = board.NewBoard()
}

func (u *UCI) handleDebug(args []string) {
	if len(args) == 0 {
		return
	}
	u.eng.State().SetDebug(args[0] == "on")
}

// handlePosition implements:
//
//	position startpos [moves <LAN>...]
//	position fen <FEN> [moves <LAN>...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.b = board.NewBoard()
	case "fen":
		fenStr := strings.Join(args[1:movesAt], " ")
		b, err := board.LoadFEN(fenStr)
		if err != nil {
			u.log.Warningf("malformed position: %v", err)
			return
		}
		u.b = b
	default:
		u.log.Warningf("unrecognized position subcommand %q", args[0])
		return
	}

	if movesAt >= len(args) {
		return
	}
	for _, lan := range args[movesAt+1:] {
		m, err := board.ParseLAN(u.b, lan)
		if err != nil {
			u.log.Warningf("malformed move %q: %v", lan, err)
			return
		}
		if !u.b.IsLegal(m) {
			u.log.Warningf("illegal move %q in position moves, skipping rest", lan)
			return
		}
		u.b.Apply(m)
	}
}

// goOptions holds the parsed subcommands of a "go" line.
type goOptions struct {
	searchMoves []string
	ponder      bool
	depth       int
	nodes       uint64
	mate        int
	moveTime    time.Duration
	infinite    bool
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !isGoKeyword(args[i+1]) {
				opts.searchMoves = append(opts.searchMoves, args[i+1])
				i++
			}
		case "ponder":
			opts.ponder = true
		case "depth":
			if i+1 < len(args) {
				opts.depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				opts.nodes, _ = strconv.ParseUint(args[i+1], 10, 64)
				i++
			}
		case "mate":
			if i+1 < len(args) {
				opts.mate, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.moveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.infinite = true
		case "wtime", "btime", "winc", "binc", "movestogo":
			// Accepted and ignored: outside the core search's scope.
			if i+1 < len(args) {
				i++
			}
		}
	}

	return opts
}

func isGoKeyword(s string) bool {
	switch s {
	case "ponder", "depth", "nodes", "mate", "movetime", "infinite",
		"wtime", "btime", "winc", "binc", "movestogo":
		return true
	}
	return false
}

// depthFromOptions resolves a go line's depth-controlling subcommands
// into a single ply count, per the precedence: mate and depth search
// to the named depth directly; nodes approximates a depth via log2;
// infinite requests the maximum; otherwise 0, which Engine.Search treats
// as no depth bound (255).
func (u *UCI) depthFromOptions(o goOptions) int {
	switch {
	case o.infinite:
		return 255
	case o.mate > 0:
		return o.mate
	case o.depth > 0:
		return o.depth
	case o.nodes > 0:
		return int(math.Log2(float64(o.nodes)))
	default:
		return 0
	}
}

func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	limits := engine.Limits{
		Depth:    u.depthFromOptions(opts),
		MoveTime: opts.moveTime,
		Infinite: opts.infinite,
	}
	for _, lan := range opts.searchMoves {
		m, err := board.ParseLAN(u.b, lan)
		if err != nil {
			u.log.Warningf("malformed searchmoves entry %q: %v", lan, err)
			continue
		}
		limits.SearchMoves = append(limits.SearchMoves, m)
	}

	u.eng.OnInfo = func(info engine.Info) {
		if u.eng.State().Debug() {
			u.sendInfo(info)
		}
	}

	b := u.b.Copy()
	u.searchDone = make(chan struct{})
	u.bestmoveOut = sync.Once{}

	go func() {
		defer close(u.searchDone)
		best := u.eng.Search(b, limits)
		if !opts.ponder {
			u.emitBestMove(best)
		}
	}()
}

func (u *UCI) sendInfo(info engine.Info) {
	fmt.Fprintf(u.out, "info depth %d score cp %d nodes %d time %d\n",
		info.Depth, info.Score, info.Nodes, info.Time.Milliseconds())
}

// emitBestMove prints "bestmove" at most once per search, however the
// search ended: on its own (handleGo's goroutine, unless pondering) or
// because "stop" cut it short (handleStop, unconditionally, even while
// pondering). Whichever call reaches it first wins; the other is a
// no-op, so a stop that races a naturally-finishing search never
// double-prints.
func (u *UCI) emitBestMove(m board.Move) {
	u.bestmoveOut.Do(func() {
		fmt.Fprintf(u.out, "bestmove %s\n", m.String())
	})
}

// handleStop aborts any running search and always reports the best
// move found so far, matching "stop" unconditionally emitting bestmove
// regardless of whether the search was pondering.
func (u *UCI) handleStop() {
	if u.searchDone == nil {
		return
	}
	u.eng.Stop()
	<-u.searchDone
	u.emitBestMove(u.eng.State().BestMove())
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	info, err := board.PerftThreaded(u.b, depth, u.eng.Workers)
	if err != nil {
		u.log.Warningf("threaded perft failed: %v", err)
		return
	}
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", info.Nodes)
	fmt.Fprintf(u.out, "Captures: %d\n", info.Captures)
	fmt.Fprintf(u.out, "En Passants: %d\n", info.EnPassants)
	fmt.Fprintf(u.out, "Castles: %d\n", info.Castles)
	fmt.Fprintf(u.out, "Promotions: %d\n", info.Promotions)
	fmt.Fprintf(u.out, "Checks: %d\n", info.Checks)
	fmt.Fprintf(u.out, "Checkmates: %d\n", info.Checkmates)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(info.Nodes)/elapsed.Seconds())
	}
}
