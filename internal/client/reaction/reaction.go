// Package reaction computes optimistic vote and like state.
//
// A Reactable is the positive/negative counter pair of an entity together
// with the viewer's own reaction. Compute applies one viewer action to it
// with toggle and switch semantics; the adapters in this package apply the
// same transition to feedback votes, comment likes and reply likes, returning
// updated copies of the collections the caller holds.
package reaction

// Reactable is the reaction state of one entity as seen by one viewer.
// ViewerPositive and ViewerNegative are never both true.
type Reactable struct {
	Positive       int
	Negative       int
	ViewerPositive bool
	ViewerNegative bool
}

// Compute returns the state after the viewer requests a positive (true) or
// negative (false) reaction.
//
// Requesting the reaction the viewer already holds withdraws it. Requesting
// the opposite one moves the viewer's reaction across. Otherwise the
// requested reaction is added.
func Compute(cur Reactable, positive bool) Reactable {
	next := cur
	switch {
	case cur.ViewerPositive && positive:
		next.Positive--
		next.ViewerPositive = false
	case cur.ViewerNegative && !positive:
		next.Negative--
		next.ViewerNegative = false
	case cur.ViewerPositive && !positive:
		next.Positive--
		next.Negative++
		next.ViewerPositive = false
		next.ViewerNegative = true
	case cur.ViewerNegative && positive:
		next.Negative--
		next.Positive++
		next.ViewerNegative = false
		next.ViewerPositive = true
	case positive:
		next.Positive++
		next.ViewerPositive = true
	default:
		next.Negative++
		next.ViewerNegative = true
	}
	return next
}
