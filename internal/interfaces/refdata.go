package interfaces

import "context"

// SectorProvider maps trading symbols to sector classifications for the
// sector breakdown report. Unknown symbols are simply absent from the result.
type SectorProvider interface {
	Sectors(ctx context.Context, symbols []string) (map[string]string, error)
}
