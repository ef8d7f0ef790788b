package dragdrop

import (
	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

type Kind int

const (
	KindNoop Kind = iota
	KindMove
	KindMerge
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindMerge:
		return "merge"
	default:
		return "noop"
	}
}

// Drop is the resolved effect of releasing a dragged list.
type Drop struct {
	Kind     Kind
	SourceID int64
	// TargetID is the list merged into; set for KindMerge only.
	TargetID int64
	// Date is the target day key.
	Date string
}

// Resolve decides what dropping the list of origin onto target does.
// Dropping outside any tile (hit false) or on the origin is a no-op.
func Resolve(origin string, sourceID int64, target string, hit bool, lists []domain.List) Drop {
	origin, target = calendar.NormalizeKey(origin), calendar.NormalizeKey(target)
	if !hit || sourceID == 0 || target == "" || target == origin {
		return Drop{Kind: KindNoop}
	}
	if l := ListOn(lists, target); l != nil && l.ID != sourceID {
		return Drop{Kind: KindMerge, SourceID: sourceID, TargetID: l.ID, Date: target}
	}
	return Drop{Kind: KindMove, SourceID: sourceID, Date: target}
}

// ListOn returns the list dated on day key, or nil.
func ListOn(lists []domain.List, key string) *domain.List {
	key = calendar.NormalizeKey(key)
	for i := range lists {
		if calendar.NormalizeKey(lists[i].Date) == key {
			return &lists[i]
		}
	}
	return nil
}
