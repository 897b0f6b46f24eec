package migration

import "crickstore/internal/services/woocommerce"

// OrderCategories orders source categories so every parent precedes its
// children. Roots (parent 0) seed the output; remaining categories move in
// once their parent is placed. When a full pass places nothing, the leftover
// records reference a parent that is missing from the set or cyclic — they
// are appended verbatim, in original order, so one broken record never
// stalls the categories phase.
func OrderCategories(categories []woocommerce.Category) []woocommerce.Category {
	ordered := make([]woocommerce.Category, 0, len(categories))
	placed := make(map[int64]bool, len(categories))

	var remaining []woocommerce.Category
	for _, cat := range categories {
		if cat.Parent == 0 {
			ordered = append(ordered, cat)
			placed[cat.ID] = true
		} else {
			remaining = append(remaining, cat)
		}
	}

	for len(remaining) > 0 {
		var next []woocommerce.Category
		moved := false

		for _, cat := range remaining {
			if placed[cat.Parent] {
				ordered = append(ordered, cat)
				placed[cat.ID] = true
				moved = true
			} else {
				next = append(next, cat)
			}
		}

		if !moved {
			// Unresolvable parents: keep the records rather than loop.
			ordered = append(ordered, next...)
			break
		}
		remaining = next
	}

	return ordered
}
