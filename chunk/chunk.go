// Package chunk splits chart output into pages.
package chunk

import "github.com/jsphweid/chordchart/model"

// Paginate fills pages of at most pageLines lines with whole blocks. A block
// longer than a page gets a page of its own. A pageLines of zero or less
// puts everything on one page.
func Paginate(blocks []model.Block, pageLines int) []model.Page {
	var pages []model.Page
	current := model.Page{Number: 1}
	for _, b := range blocks {
		if pageLines > 0 && len(current.Lines) > 0 && len(current.Lines)+len(b.Lines) > pageLines {
			pages = append(pages, current)
			current = model.Page{Number: current.Number + 1}
		}
		current.Lines = append(current.Lines, b.Lines...)
	}
	if len(current.Lines) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// Blocks counts how many blocks start on each page, mostly useful for
// logging.
func Blocks(blocks []model.Block, pageLines int) map[int]int {
	res := map[int]int{}
	page, lines := 1, 0
	for _, b := range blocks {
		if pageLines > 0 && lines > 0 && lines+len(b.Lines) > pageLines {
			page++
			lines = 0
		}
		lines += len(b.Lines)
		res[page]++
	}
	return res
}
