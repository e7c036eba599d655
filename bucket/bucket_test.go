package bucket

import (
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Index('A', -1, false))
	assert.Equal(3, Index('A', 0, true))
	assert.Equal(6*6+2, Index('G', 0, false))
	assert.Equal(Count-1, Index('G', 1, true))
	assert.Equal(-1, Index('?', 0, false))
	assert.Equal(-1, Index(0, 0, false))
}

func TestByKey(t *testing.T) {
	doc := model.NewDocument()
	kesh := doc.NewSong(model.Song{Title: "Kesh", Key: 'G'})
	butterfly := doc.NewSong(model.Song{Title: "Butterfly", Key: 'E', Minor: true})
	banish := doc.NewSong(model.Song{Title: "Banish Misfortune", Key: 'D', Mode: model.ModeMixolydian})
	cooleys := doc.NewSong(model.Song{Title: "Cooley's", Key: 'E', Minor: true})
	odd := doc.NewSong(model.Song{Title: "Odd", Key: '?'})
	athol := doc.NewSong(model.Song{Title: "Athol Highlanders", Key: 'A'})

	buckets := ByKey(doc, doc.Songs)

	assert := assert.New(t)
	var keys []string
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	assert.Equal([]string{"A", "D", "Em", "G", "?"}, keys)
	assert.Equal([]model.SongID{butterfly, cooleys}, buckets[2].Songs)
	assert.Equal([]model.SongID{banish}, buckets[1].Songs)
	assert.Equal([]model.SongID{kesh}, buckets[3].Songs)
	assert.Equal([]model.SongID{odd}, buckets[4].Songs)
	assert.Equal([]model.SongID{athol, banish, butterfly, cooleys, kesh, odd}, Alphabetical(doc, doc.Songs))
}
