package matching

import (
	"fmt"
	"sort"
	"sync"

	"tradebook-analyzer/internal/types"
)

// lot pairs a position with the global index of its opening order, so ledgers
// matched per key can be merged back into creation order.
type lot struct {
	pos     *types.Position
	openIdx int
}

type indexedOrder struct {
	idx   int
	order *types.Order
}

// Match consumes orders in ascending execution-time order and produces the
// complete position ledger, open and closed, in creation order. FIFO is
// enforced within each instrument key: an order first closes the oldest
// opposite-side open positions of its key, then opens a new position with any
// unmatched remainder.
//
// Position IDs are assigned from a monotonic counter over the final creation
// order, so identical input always yields an identical ledger.
func Match(orders []*types.Order) []*types.Position {
	return MatchParallel(orders, 1)
}

// MatchParallel is Match with the per-key partitions processed by up to
// `workers` goroutines. FIFO ordering only matters within one key, so the
// fan-out preserves correctness; the fan-in re-sorts lots into global
// creation order, making the result byte-identical to the serial run.
func MatchParallel(orders []*types.Order, workers int) []*types.Position {
	partitions := partitionByKey(orders)

	var lots []lot
	if workers <= 1 || len(partitions) <= 1 {
		for _, part := range partitions {
			lots = append(lots, matchKey(part)...)
		}
	} else {
		lots = matchConcurrent(partitions, workers)
	}

	sort.Slice(lots, func(i, j int) bool { return lots[i].openIdx < lots[j].openIdx })

	ledger := make([]*types.Position, len(lots))
	for i, l := range lots {
		l.pos.ID = fmt.Sprintf("P-%06d", i+1)
		ledger[i] = l.pos
	}
	return ledger
}

// partitionByKey splits the order stream into per-instrument-key sequences,
// preserving relative order within each key. Partition order follows first
// appearance so the serial path stays deterministic.
func partitionByKey(orders []*types.Order) [][]indexedOrder {
	byKey := make(map[types.InstrumentKey][]indexedOrder)
	keys := make([]types.InstrumentKey, 0)

	for i, o := range orders {
		k := o.Key()
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], indexedOrder{idx: i, order: o})
	}

	parts := make([][]indexedOrder, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, byKey[k])
	}
	return parts
}

func matchConcurrent(partitions [][]indexedOrder, workers int) []lot {
	if workers > len(partitions) {
		workers = len(partitions)
	}

	jobs := make(chan []indexedOrder)
	results := make(chan []lot)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for part := range jobs {
				results <- matchKey(part)
			}
		}()
	}

	go func() {
		for _, part := range partitions {
			jobs <- part
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var lots []lot
	for ls := range results {
		lots = append(lots, ls...)
	}
	return lots
}

// matchKey runs the FIFO algorithm over the orders of a single instrument
// key. The open list is local to the call; fully-closed positions are pruned
// from it but stay in the returned ledger.
func matchKey(orders []indexedOrder) []lot {
	var open []*types.Position
	var ledger []lot

	for _, io := range orders {
		o := io.order
		remaining := o.Qty
		if remaining <= 0 {
			continue
		}

		// Close the oldest opposite-side positions first.
		for _, p := range open {
			if remaining == 0 {
				break
			}
			if !oppositeSide(o.Side, p) {
				continue
			}

			closed := p.RemainingQty
			if remaining < closed {
				closed = remaining
			}

			if o.Side == types.SideBuy {
				// Buying back a short.
				p.RealizedPnL += float64(closed) * (p.AvgEntryPrice - o.AvgPrice)
				p.BuyValue += float64(closed) * o.AvgPrice
				p.Qty += closed
			} else {
				// Selling down a long.
				p.RealizedPnL += float64(closed) * (o.AvgPrice - p.AvgEntryPrice)
				p.SellValue += float64(closed) * o.AvgPrice
				p.Qty -= closed
			}
			p.RemainingQty -= closed
			p.Orders = append(p.Orders, o)
			remaining -= closed

			if p.RemainingQty == 0 {
				closePosition(p, o)
			}
		}

		open = pruneClosed(open)

		if remaining > 0 {
			p := openPosition(o, remaining)
			open = append(open, p)
			ledger = append(ledger, lot{pos: p, openIdx: io.idx})
		}
	}
	return ledger
}

func oppositeSide(side string, p *types.Position) bool {
	if side == types.SideBuy {
		return p.Qty < 0
	}
	return p.Qty > 0
}

func openPosition(o *types.Order, qty int) *types.Position {
	p := &types.Position{
		Symbol:        o.Symbol,
		Instrument:    o.Instrument,
		Strike:        o.Strike,
		Expiry:        o.Expiry,
		MaxQty:        qty,
		RemainingQty:  qty,
		AvgEntryPrice: o.AvgPrice,
		Status:        types.StatusOpen,
		OpenedAt:      o.ExecutedAt,
		Orders:        []*types.Order{o},
	}
	if o.Side == types.SideBuy {
		p.Qty = qty
		p.BuyValue = float64(qty) * o.AvgPrice
	} else {
		p.Qty = -qty
		p.SellValue = float64(qty) * o.AvgPrice
	}
	return p
}

// closePosition seals a fully-matched lot. Entry and exit prices are
// recomputed as value/maxQty on the respective sides so partial closes at
// different prices settle into consistent averages.
func closePosition(p *types.Position, closing *types.Order) {
	p.Status = types.StatusClosed
	p.ClosedAt = closing.ExecutedAt

	maxQty := float64(p.MaxQty)
	if closing.Side == types.SideSell {
		p.AvgEntryPrice = p.BuyValue / maxQty
		p.ExitPrice = p.SellValue / maxQty
	} else {
		p.AvgEntryPrice = p.SellValue / maxQty
		p.ExitPrice = p.BuyValue / maxQty
	}
}

func pruneClosed(open []*types.Position) []*types.Position {
	kept := open[:0]
	for _, p := range open {
		if p.IsOpen() {
			kept = append(kept, p)
		}
	}
	return kept
}
