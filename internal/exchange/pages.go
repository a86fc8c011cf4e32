package exchange

// PageSize is the largest page the search endpoint serves.
const PageSize = 100

type Page struct {
	Number int
	Size   int
}

// EffectiveCount caps count by a positive limit.
func EffectiveCount(count, limit int) int {
	if count < 0 {
		return 0
	}
	if limit > 0 && limit < count {
		return limit
	}
	return count
}

// PlanPages lists the page requests needed to fetch
// EffectiveCount(count, limit) tracks. Only the last page may be short.
func PlanPages(count, limit int) []Page {
	total := EffectiveCount(count, limit)
	if total == 0 {
		return nil
	}

	pages := make([]Page, 0, (total+PageSize-1)/PageSize)
	for number, remaining := 1, total; remaining > 0; number++ {
		size := PageSize
		if remaining < PageSize {
			size = remaining
		}
		pages = append(pages, Page{Number: number, Size: size})
		remaining -= size
	}
	return pages
}
