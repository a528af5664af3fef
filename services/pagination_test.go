package services

import (
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := seq(25)

	tests := []struct {
		name string
		page int
		want []int
	}{
		{"first page", 1, items[0:10]},
		{"second page", 2, items[10:20]},
		{"partial last page", 3, items[20:25]},
		{"past the end", 4, []int{}},
		{"far past the end", 1000, []int{}},
		{"zero page", 0, []int{}},
		{"negative page", -3, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.page, items)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paginate(%d) = %v, want %v", tt.page, got, tt.want)
			}
		})
	}
}

func TestPaginateMatchesSliceForAllPages(t *testing.T) {
	for n := 0; n <= 31; n++ {
		items := seq(n)
		for page := 1; page <= 5; page++ {
			start := (page - 1) * QuestionsPerPage
			end := page * QuestionsPerPage
			var want []int
			switch {
			case start >= n:
				want = []int{}
			case end > n:
				want = items[start:n]
			default:
				want = items[start:end]
			}
			if got := Paginate(page, items); !reflect.DeepEqual(got, want) {
				t.Fatalf("n=%d page=%d: got %v, want %v", n, page, got, want)
			}
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	if got := Paginate[int](1, nil); len(got) != 0 {
		t.Errorf("expected empty page, got %v", got)
	}
}
