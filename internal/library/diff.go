package library

import "github.com/utterbank/utterbank/pkg/corpus"

// Diff describes how one published index differs from its successor.
// Ids are listed in the corpus order of the index they came from, so the
// same pair of indexes always produces the same diff.
type Diff struct {
	Added   []string // ids present only in the new index, in new corpus order
	Removed []string // ids present only in the old index, in old corpus order
	Changed []string // ids whose sample fields differ, in new corpus order
}

// Empty reports whether the two indexes hold identical samples.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffIndexes compares two indexes by sample id. A sample counts as changed
// when any of its fields differ, metadata included.
func DiffIndexes(old, new *corpus.Index) Diff {
	d := Diff{}

	// Detect added and modified samples.
	for i := 0; i < new.Len(); i++ {
		ns := new.SampleAt(i)
		prev, err := old.ByID(ns.ID)
		if err != nil {
			d.Added = append(d.Added, ns.ID)
			continue
		}
		if prev != ns {
			d.Changed = append(d.Changed, ns.ID)
		}
	}

	// Detect removed samples.
	for i := 0; i < old.Len(); i++ {
		id := old.SampleAt(i).ID
		if _, err := new.ByID(id); err != nil {
			d.Removed = append(d.Removed, id)
		}
	}

	return d
}
