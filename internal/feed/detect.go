package feed

import "slices"

// KeyFunc extracts the cursor key for a feed item. An empty key marks the
// item as unkeyable; unkeyable items are skipped and never become cursors.
type KeyFunc[T any] func(T) string

// DetectNew scans a newest-first page for items that appeared after
// lastSeen. It returns the new items oldest first and the advanced cursor
// (the key of the newest item returned).
//
// When lastSeen does not occur in the page the whole page is treated as
// new. That overreports after a gap longer than one page and misreports
// after a deep reorg, but it never silently drops items, and the
// processed-id cache catches repeats downstream.
//
// An empty result leaves the cursor unchanged.
func DetectNew[T any](page []T, key KeyFunc[T], lastSeen string) ([]T, string) {
	var fresh []T
	for _, item := range page {
		k := key(item)
		if k == "" {
			continue
		}
		if k == lastSeen {
			break
		}
		fresh = append(fresh, item)
	}

	if len(fresh) == 0 {
		return nil, lastSeen
	}

	slices.Reverse(fresh)
	return fresh, key(fresh[len(fresh)-1])
}
