package registry

import (
	"context"
	"fmt"

	"github.com/quantline/eodsync/internal/contracts"
)

// ResolutionContext is the immutable exchange classification used for
// one import run. It is built once per run and passed explicitly, so a
// run's resolution decisions stay internally consistent even if the
// underlying reference data changes underneath it.
type ResolutionContext struct {
	Composite    contracts.Exchange
	Constituents []contracts.Exchange
	CatchAll     []contracts.Exchange

	labels map[int64]string
}

// NewResolutionContext classifies exchanges by role. Exactly one
// composite exchange must exist.
func NewResolutionContext(exchanges []contracts.Exchange) (*ResolutionContext, error) {
	rctx := &ResolutionContext{
		labels: make(map[int64]string, len(exchanges)),
	}

	var composites []contracts.Exchange
	for _, ex := range exchanges {
		rctx.labels[ex.ID] = ex.Label

		switch ex.Role {
		case contracts.RoleComposite:
			composites = append(composites, ex)
		case contracts.RoleConstituent:
			rctx.Constituents = append(rctx.Constituents, ex)
		case contracts.RoleCatchAll:
			rctx.CatchAll = append(rctx.CatchAll, ex)
		default:
			return nil, fmt.Errorf("exchange %q has unknown role %q", ex.Label, ex.Role)
		}
	}

	if len(composites) != 1 {
		return nil, fmt.Errorf("expected exactly one composite exchange, found %d", len(composites))
	}
	rctx.Composite = composites[0]

	return rctx, nil
}

// LoadResolutionContext reads all exchanges from the store and
// classifies them.
func LoadResolutionContext(ctx context.Context, store contracts.ExchangeStore) (*ResolutionContext, error) {
	exchanges, err := store.ListExchanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	return NewResolutionContext(exchanges)
}

// ConstituentIDs returns the ids of all constituent exchanges.
func (r *ResolutionContext) ConstituentIDs() []int64 {
	ids := make([]int64, len(r.Constituents))
	for i, ex := range r.Constituents {
		ids[i] = ex.ID
	}
	return ids
}

// CatchAllIDs returns the ids of all catch-all exchanges.
func (r *ResolutionContext) CatchAllIDs() []int64 {
	ids := make([]int64, len(r.CatchAll))
	for i, ex := range r.CatchAll {
		ids[i] = ex.ID
	}
	return ids
}

// Label returns the label of the exchange with the given id.
func (r *ResolutionContext) Label(exchangeID int64) string {
	if label, ok := r.labels[exchangeID]; ok {
		return label
	}
	return fmt.Sprintf("exchange#%d", exchangeID)
}
