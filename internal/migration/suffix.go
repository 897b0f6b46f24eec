package migration

import "fmt"

// firstAvailable returns base unchanged if exists reports it free, otherwise
// probes base-1, base-2, ... until a free candidate turns up. Slug, SKU and
// image filename uniquification all share this loop; their counters stay
// independent because each call starts from 1.
func firstAvailable(base string, exists func(string) (bool, error)) (string, error) {
	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
