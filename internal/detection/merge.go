package detection

// mergeRegions merges regions separated by at most gap pixels along both
// axes, repeating until no pair qualifies so that chains of nearby boxes
// collapse into one. Returns the merged set and the number of merges
// performed.
func mergeRegions(regions []Region, gap int) ([]Region, int) {
	if gap <= 0 || len(regions) < 2 {
		return regions, 0
	}

	merges := 0
	for {
		changed := false
		out := make([]Region, 0, len(regions))
		used := make([]bool, len(regions))

		for i := 0; i < len(regions); i++ {
			if used[i] {
				continue
			}
			cur := regions[i]
			for j := i + 1; j < len(regions); j++ {
				if used[j] {
					continue
				}
				if withinGap(cur, regions[j], gap) {
					cur = unionRegions(cur, regions[j])
					used[j] = true
					merges++
					changed = true
				}
			}
			out = append(out, cur)
		}

		regions = out
		if !changed {
			return regions, merges
		}
	}
}

// withinGap reports whether two regions sit within gap pixels of each other
// along both axes. Overlap counts as zero gap.
func withinGap(a, b Region, gap int) bool {
	dx := axisGap(a.X, a.Width, b.X, b.Width)
	dy := axisGap(a.Y, a.Height, b.Y, b.Height)
	return dx <= gap && dy <= gap
}

// axisGap returns the empty distance between two spans on one axis, negative
// when they overlap.
func axisGap(aStart, aLen, bStart, bLen int) int {
	return maxInt(aStart, bStart) - minInt(aStart+aLen, bStart+bLen)
}

// unionRegions combines two regions into their bounding union.
func unionRegions(a, b Region) Region {
	x1 := minInt(a.X, b.X)
	y1 := minInt(a.Y, b.Y)
	x2 := maxInt(a.X+a.Width, b.X+b.Width)
	y2 := maxInt(a.Y+a.Height, b.Y+b.Height)

	r := Region{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
		Pixels: a.Pixels + b.Pixels,
	}
	r.Area = r.Width * r.Height
	return r
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
