// Package bucket groups songs by key for the chart index.
package bucket

import (
	"sort"

	"github.com/jsphweid/chordchart/model"
)

// Count is the number of key buckets: seven letters, three accidentals,
// major and minor.
const Count = 7 * 3 * 2

type Bucket struct {
	Key   string
	Songs []model.SongID
}

// Index maps a key to its bucket, or -1 when the key is not a letter A-G.
func Index(key byte, accidental int, minor bool) int {
	if key < 'A' || key > 'G' || accidental < -1 || accidental > 1 {
		return -1
	}
	index := int(key-'A')*6 + (accidental+1)*2
	if minor {
		index++
	}
	return index
}

// ByKey buckets the songs in key order (A before Bb before B, major before
// minor), each bucket sorted by title. Songs without a usable key come
// last, in a bucket named "?".
func ByKey(doc *model.Document, songs []model.SongID) []Bucket {
	var slots [Count][]model.SongID
	var unknown []model.SongID
	for _, id := range songs {
		s := doc.Song(id)
		if i := Index(s.Key, s.Accidental, s.Minor); i >= 0 {
			slots[i] = append(slots[i], id)
		} else {
			unknown = append(unknown, id)
		}
	}

	var res []Bucket
	for _, ids := range slots {
		if len(ids) == 0 {
			continue
		}
		sortByTitle(doc, ids)
		res = append(res, Bucket{Key: doc.Song(ids[0]).KeyName(), Songs: ids})
	}
	if len(unknown) > 0 {
		sortByTitle(doc, unknown)
		res = append(res, Bucket{Key: "?", Songs: unknown})
	}
	return res
}

func sortByTitle(doc *model.Document, ids []model.SongID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return doc.Song(ids[i]).Title < doc.Song(ids[j]).Title
	})
}

// Alphabetical returns the songs sorted by title.
func Alphabetical(doc *model.Document, songs []model.SongID) []model.SongID {
	res := append([]model.SongID(nil), songs...)
	sortByTitle(doc, res)
	return res
}
