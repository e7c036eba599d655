package chunk

import (
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

func block(title string, n int) model.Block {
	b := model.Block{Title: title}
	for i := 0; i < n; i++ {
		b.Lines = append(b.Lines, title)
	}
	return b
}

func TestPaginate(t *testing.T) {
	blocks := []model.Block{block("a", 4), block("b", 4), block("c", 3), block("d", 12)}

	pages := Paginate(blocks, 10)

	assert := assert.New(t)
	assert.Len(pages, 3)
	assert.Equal(1, pages[0].Number)
	assert.Len(pages[0].Lines, 8)
	assert.Equal([]string{"c", "c", "c"}, pages[1].Lines)
	assert.Len(pages[2].Lines, 12)
	assert.Equal(map[int]int{1: 2, 2: 1, 3: 1}, Blocks(blocks, 10))
}

func TestPaginateUnlimited(t *testing.T) {
	pages := Paginate([]model.Block{block("a", 40), block("b", 40)}, 0)

	assert.Len(t, pages, 1)
	assert.Len(t, pages[0].Lines, 80)
}

func TestPaginateEmpty(t *testing.T) {
	assert.Empty(t, Paginate(nil, 10))
}
