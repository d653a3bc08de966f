package atlas

import "fmt"

// Plan is the outcome of resolving candidate rectangles against a canvas
// and the regions already live in a session.
type Plan struct {
	// Accepted are the candidates that survive resolution, in input
	// order.
	Accepted []Rect `json:"accepted"`

	// Duplicates are candidates dropped because their bounds exactly
	// match a live region or an earlier candidate.
	Duplicates []Rect `json:"duplicates"`

	// Rejected are candidates that failed validation, with the reason.
	Rejected []Rejection `json:"rejected"`

	// Overlaps flags accepted candidates that overlap (without exactly
	// matching) a live region or another accepted candidate. Both sides
	// of each pair are kept; the flag is advisory.
	Overlaps []Overlap `json:"overlaps"`
}

// Rejection is a candidate the resolver refused, with the reason.
type Rejection struct {
	Rect   Rect   `json:"rect"`
	Reason string `json:"reason"`
}

// Overlap is a flagged pair of overlapping rectangles. A is the incoming
// candidate, B the rectangle it collides with.
type Overlap struct {
	A Rect `json:"a"`
	B Rect `json:"b"`
}

// Resolve validates candidate rectangles for insertion into a session.
//
// Rules, applied per candidate in order:
//
//   - a rect with no area, or extending outside the canvasW×canvasH
//     canvas, is rejected
//   - a rect whose bounds exactly match a live region or an earlier
//     candidate collapses into that first-seen instance, so re-running
//     the same candidates over the same session adds nothing
//   - a rect that overlaps without matching is kept and the pair flagged
//
// Resolve only plans; it mutates nothing. A batch with rejects still
// yields its valid remainder in Accepted.
func Resolve(candidates []Rect, canvasW, canvasH int, live []Region) Plan {
	plan := Plan{
		Accepted:   make([]Rect, 0, len(candidates)),
		Duplicates: make([]Rect, 0),
		Rejected:   make([]Rejection, 0),
		Overlaps:   make([]Overlap, 0),
	}

	seen := make(map[Rect]bool, len(live)+len(candidates))
	for _, r := range live {
		seen[r.Bounds] = true
	}

	for _, c := range candidates {
		if c.Empty() {
			plan.Rejected = append(plan.Rejected, Rejection{
				Rect:   c,
				Reason: fmt.Sprintf("bounds %dx%d have no area", c.Width, c.Height),
			})
			continue
		}
		if !c.Inside(canvasW, canvasH) {
			plan.Rejected = append(plan.Rejected, Rejection{
				Rect:   c,
				Reason: fmt.Sprintf("bounds (%d,%d) %dx%d outside %dx%d canvas", c.X, c.Y, c.Width, c.Height, canvasW, canvasH),
			})
			continue
		}
		if seen[c] {
			plan.Duplicates = append(plan.Duplicates, c)
			continue
		}

		for _, r := range live {
			if c.Overlaps(r.Bounds) {
				plan.Overlaps = append(plan.Overlaps, Overlap{A: c, B: r.Bounds})
			}
		}
		for _, a := range plan.Accepted {
			if c.Overlaps(a) {
				plan.Overlaps = append(plan.Overlaps, Overlap{A: c, B: a})
			}
		}

		seen[c] = true
		plan.Accepted = append(plan.Accepted, c)
	}

	return plan
}
