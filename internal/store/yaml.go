package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/trailsim/internal/logging/events"
)

// FileName is the document YAMLStore keeps under its data directory.
const FileName = "trailsim.yaml"

type document struct {
	TopTen     []Score     `yaml:"top_ten"`
	Tombstones []Tombstone `yaml:"tombstones"`
}

// YAMLStore keeps the top ten and the tombstones in one YAML file. The file
// is read on every call and rewritten through a temporary file on every
// change, so several runs can share a data directory.
type YAMLStore struct {
	path string
	now  func() time.Time
}

func NewYAMLStore(dir string) (*YAMLStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &YAMLStore{path: filepath.Join(dir, FileName), now: time.Now}, nil
}

func (y *YAMLStore) Path() string { return y.path }

func (y *YAMLStore) TopTen() ([]Score, error) {
	doc, err := y.load()
	if err != nil {
		return nil, err
	}
	return doc.TopTen, nil
}

func (y *YAMLStore) RecordScore(s Score) (int, error) {
	doc, err := y.load()
	if err != nil {
		return 0, err
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = y.now().UTC()
	}
	var rank int
	doc.TopTen, rank = insertScore(doc.TopTen, s)
	if rank == 0 {
		return 0, nil
	}
	if err := y.save(doc, "score", len(doc.TopTen)); err != nil {
		return 0, err
	}
	return rank, nil
}

func (y *YAMLStore) Tombstones() ([]Tombstone, error) {
	doc, err := y.load()
	if err != nil {
		return nil, err
	}
	return doc.Tombstones, nil
}

func (y *YAMLStore) WriteTombstone(t Tombstone) (Tombstone, error) {
	doc, err := y.load()
	if err != nil {
		return Tombstone{}, err
	}
	t = stampTombstone(t, y.now().UTC())
	doc.Tombstones = append(doc.Tombstones, t)
	sortTombstones(doc.Tombstones)
	if err := y.save(doc, "tombstone", len(doc.Tombstones)); err != nil {
		return Tombstone{}, err
	}
	return t, nil
}

func (y *YAMLStore) load() (*document, error) {
	data, err := os.ReadFile(y.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document{TopTen: DefaultTopTen()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", y.path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		events.Store.Error(err)
		return nil, fmt.Errorf("store: decode %s: %w", y.path, err)
	}
	return &doc, nil
}

func (y *YAMLStore) save(doc *document, kind string, entries int) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	tmp := y.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		events.Store.Error(err)
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, y.path); err != nil {
		events.Store.Error(err)
		return fmt.Errorf("store: replace %s: %w", y.path, err)
	}
	events.Store.Write(kind, y.path, entries)
	return nil
}
