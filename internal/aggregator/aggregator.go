package aggregator

import (
	"sort"

	"tradebook-analyzer/internal/types"
)

// BuildOrders merges raw executions sharing an order ID into logical orders
// with a quantity-weighted average price. Input order does not matter; the
// result is sorted ascending by execution time (ties broken by order ID) so
// downstream matching sees a deterministic sequence.
//
// Orders with zero net quantity are still emitted with AvgPrice 0.
func BuildOrders(executions []types.Execution) []*types.Order {
	groups := make(map[string]*types.Order)
	ids := make([]string, 0)

	for _, e := range executions {
		o := groups[e.OrderID]
		if o == nil {
			o = &types.Order{
				ID:         e.OrderID,
				Symbol:     e.Symbol,
				Instrument: e.Instrument,
				Strike:     e.Strike,
				Expiry:     e.Expiry,
				Side:       e.Side,
				ExecutedAt: e.ExecutedAt,
				TradeDate:  e.TradeDate,
			}
			groups[e.OrderID] = o
			ids = append(ids, e.OrderID)
		}
		o.Qty += e.Qty
		o.Value += float64(e.Qty) * e.Price
		if e.ExecutedAt.Before(o.ExecutedAt) {
			o.ExecutedAt = e.ExecutedAt
			o.TradeDate = e.TradeDate
		}
		o.Executions = append(o.Executions, e)
	}

	orders := make([]*types.Order, 0, len(groups))
	for _, id := range ids {
		o := groups[id]
		if o.Qty > 0 {
			o.AvgPrice = o.Value / float64(o.Qty)
		}
		sort.SliceStable(o.Executions, func(i, j int) bool {
			return o.Executions[i].ExecutedAt.Before(o.Executions[j].ExecutedAt)
		})
		orders = append(orders, o)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].ExecutedAt.Equal(orders[j].ExecutedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].ExecutedAt.Before(orders[j].ExecutedAt)
	})
	return orders
}
