package scheduling

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// SortOperations returns the job's operations ordered by sequence number
// ascending, the iteration order consumed by the allocator. The input slice
// is not mutated. Fails with ErrDuplicateSequenceOrder when two operations
// share a sequence number.
func SortOperations(ops []entities.Operation) ([]entities.Operation, error) {
	sorted := slices.Clone(ops)
	slices.SortStableFunc(sorted, func(a, b entities.Operation) int {
		return cmp.Compare(a.SequenceOrder, b.SequenceOrder)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].SequenceOrder == sorted[i-1].SequenceOrder {
			return nil, errors.Wrapf(entities.ErrDuplicateSequenceOrder,
				"operations %s and %s both have sequence order %d",
				sorted[i-1].ID, sorted[i].ID, sorted[i].SequenceOrder)
		}
	}

	return sorted, nil
}
