// Package store persists the two things that outlive a run: the top-ten
// score list and the tombstones left on the trail by dead parties.
package store

import (
	"cmp"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
)

// TopTenSize is the number of scores kept.
const TopTenSize = 10

type Score struct {
	Name       string    `yaml:"name"`
	Points     int       `yaml:"points"`
	Rating     string    `yaml:"rating"`
	RecordedAt time.Time `yaml:"recorded_at,omitempty"`
}

type Tombstone struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Mileage   int       `yaml:"mileage"`
	Epitaph   string    `yaml:"epitaph,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Store is the persistence hook the game calls into.
type Store interface {
	TopTen() ([]Score, error)
	// RecordScore inserts s and returns its 1-based rank, or 0 when it did
	// not make the list.
	RecordScore(s Score) (int, error)
	Tombstones() ([]Tombstone, error)
	// WriteTombstone stores t, assigning an ID and timestamp when missing.
	WriteTombstone(t Tombstone) (Tombstone, error)
}

// DefaultTopTen is the list a fresh store starts with.
func DefaultTopTen() []Score {
	return []Score{
		{Name: "Stephen Meek", Points: 7650, Rating: "Trail guide"},
		{Name: "Celinda Hines", Points: 5694, Rating: "Adventurer"},
		{Name: "Andrew Sublette", Points: 4138, Rating: "Adventurer"},
		{Name: "David Hastings", Points: 2945, Rating: "Greenhorn"},
		{Name: "Ezra Meeker", Points: 2052, Rating: "Greenhorn"},
		{Name: "Willian Vaughn", Points: 1401, Rating: "Greenhorn"},
		{Name: "Mary Bartlett", Points: 937, Rating: "Greenhorn"},
		{Name: "William Wiggins", Points: 615, Rating: "Greenhorn"},
		{Name: "Charles Hopper", Points: 396, Rating: "Greenhorn"},
		{Name: "Elijah White", Points: 241, Rating: "Greenhorn"},
	}
}

// insertScore places s among scores, highest first, and trims the list.
// Ties keep the older score ahead.
func insertScore(scores []Score, s Score) ([]Score, int) {
	idx, _ := slices.BinarySearchFunc(scores, s, func(a, b Score) int {
		if a.Points >= b.Points {
			return -1
		}
		return 1
	})
	if idx >= TopTenSize {
		return scores, 0
	}
	scores = slices.Insert(scores, idx, s)
	if len(scores) > TopTenSize {
		scores = scores[:TopTenSize]
	}
	return scores, idx + 1
}

func stampTombstone(t Tombstone, now time.Time) Tombstone {
	if t.ID == "" {
		t.ID = ulid.Make().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	return t
}

func sortTombstones(ts []Tombstone) {
	slices.SortStableFunc(ts, func(a, b Tombstone) int { return cmp.Compare(a.Mileage, b.Mileage) })
}
