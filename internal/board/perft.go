package board

import (
	"golang.org/x/sync/errgroup"
)

// PerftInfo tallies a perft traversal's leaf statistics, mirroring the
// counters a reference engine reports alongside the raw node count.
type PerftInfo struct {
	Nodes      int64
	Captures   int64
	EnPassants int64
	Castles    int64
	Promotions int64
	Checks     int64
	Checkmates int64
}

// Add accumulates another PerftInfo into p, component-wise. Used to
// combine per-worker partial results from the threaded variant.
func (p *PerftInfo) Add(o PerftInfo) {
	p.Nodes += o.Nodes
	p.Captures += o.Captures
	p.EnPassants += o.EnPassants
	p.Castles += o.Castles
	p.Promotions += o.Promotions
	p.Checks += o.Checks
	p.Checkmates += o.Checkmates
}

// Perft walks the legal-move tree to depth and tallies leaf statistics.
func Perft(b *Board, depth int) PerftInfo {
	var info PerftInfo
	perftWalk(b, depth, &info)
	return info
}

func perftWalk(b *Board, depth int, info *PerftInfo) {
	if depth == 0 {
		info.Nodes++
		return
	}
	for _, m := range b.GenerateLegalMoves().Slice() {
		perftMove(b, m, depth, info)
	}
}

// perftMove applies m, tallies per-move statistics when this is the
// final ply of the traversal, recurses one ply shallower, then undoes.
func perftMove(b *Board, m Move, depth int, info *PerftInfo) {
	isCastle := m.IsCastling()
	isPromo := m.Promotion() != Pawn

	extended := b.Apply(m)

	if depth == 1 {
		if isCastle {
			info.Castles++
		}
		if isPromo {
			info.Promotions++
		}
		if extended.IsCapture() {
			info.Captures++
			if extended.IsEnPassantCapture() {
				info.EnPassants++
			}
		}
		if b.InCheck() {
			info.Checks++
			if !b.HasLegalMoves() {
				info.Checkmates++
			}
		}
	}

	perftWalk(b, depth-1, info)
	b.Undo(extended)
}

// PerftThreaded splits the root moves across a worker pool sized by
// workers and sums the partial results component-wise; the result is
// identical to Perft but computed with one board copy per worker,
// explored concurrently via errgroup.
func PerftThreaded(b *Board, depth int, workers int) (PerftInfo, error) {
	if depth <= 0 || workers <= 1 {
		return Perft(b, depth), nil
	}

	roots := b.GenerateLegalMoves().Slice()
	partials := make([]PerftInfo, len(roots))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, m := range roots {
		i, m := i, m
		g.Go(func() error {
			worker := b.Copy()
			var info PerftInfo
			perftMove(worker, m, depth, &info)
			partials[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PerftInfo{}, err
	}

	var total PerftInfo
	for _, p := range partials {
		total.Add(p)
	}
	return total, nil
}
