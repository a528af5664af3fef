package services

// QuestionsPerPage is the fixed page size for question listings.
const QuestionsPerPage = 10

// Paginate returns items[(page-1)*10 : page*10], clipped to the slice.
// Pages below 1 and pages past the end yield an empty slice.
func Paginate[T any](page int, items []T) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
