package model

// Page is one page of paginated chart output.
type Page struct {
	Number int
	Lines  []string
}

// Block is a unit of chart output that must not be split across pages,
// typically one song.
type Block struct {
	Title string
	Lines []string
}
