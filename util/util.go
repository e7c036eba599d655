package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// InputExtensions are the file types the loader understands.
var InputExtensions = []string{".evt", ".mid", ".midi"}

func RecreateOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0777)
}

// GatherInputPaths walks path for event-stream and MIDI files. A maxNum of
// zero means no limit. A path naming a single file is returned as is.
func GatherInputPaths(path string, maxNum int) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasInputExtension(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	err = filepath.WalkDir(path, walk)
	return res, err
}

func HasInputExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range InputExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func Min[A constraints.Ordered](first A, rest ...A) A {
	res := first
	for _, v := range rest {
		if v < res {
			res = v
		}
	}
	return res
}

func Max[A constraints.Ordered](first A, rest ...A) A {
	res := first
	for _, v := range rest {
		if v > res {
			res = v
		}
	}
	return res
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// Mean is zero for an empty slice.
func Mean[A constraints.Integer | constraints.Float](nums []A) float64 {
	if len(nums) == 0 {
		return 0
	}
	return float64(Sum(nums)) / float64(len(nums))
}
