package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lepinkainen/booktracer/internal/store"
)

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		name string
		book store.Book
		want float64
	}{
		{"unknown length", store.Book{TotalPages: 0, CurrentPage: 50}, 0},
		{"not started", store.Book{TotalPages: 100, CurrentPage: 0}, 0},
		{"halfway", store.Book{TotalPages: 200, CurrentPage: 100}, 50},
		{"finished", store.Book{TotalPages: 100, CurrentPage: 100}, 100},
		{"thirds", store.Book{TotalPages: 300, CurrentPage: 100}, 100.0 / 3.0 * 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentComplete(tt.book), 1e-9)
		})
	}
}

func TestPercentCompleteRange(t *testing.T) {
	for page := 0; page <= 100; page++ {
		p := PercentComplete(store.Book{TotalPages: 100, CurrentPage: page})
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
		assert.Equal(t, page == 100, p == 100)
	}
}

func TestDaysToFinish(t *testing.T) {
	tests := []struct {
		name   string
		book   store.Book
		rate   int
		want   int
		wantOK bool
	}{
		{"thirty pages in", store.Book{TotalPages: 100, CurrentPage: 30}, 7, 10, true},
		{"exact division", store.Book{TotalPages: 100, CurrentPage: 30}, 70, 1, true},
		{"rounds up", store.Book{TotalPages: 100, CurrentPage: 30}, 69, 2, true},
		{"zero rate", store.Book{TotalPages: 100, CurrentPage: 30}, 0, 0, false},
		{"negative rate", store.Book{TotalPages: 100, CurrentPage: 30}, -1, 0, false},
		{"already finished", store.Book{TotalPages: 100, CurrentPage: 100}, 7, 0, false},
		{"unknown length", store.Book{TotalPages: 0, CurrentPage: 0}, 7, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysToFinish(tt.book, tt.rate)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
