// Package jsonfile stores top examples as JSON documents of the form
// {"0": {"score": 130, "subset": "0101..."}, "1": ...}, one file per run.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"pointconfig/domain/core"
	"pointconfig/internal/errors"
	"pointconfig/ports"
)

// FileName is the name of the examples document inside a run directory.
const FileName = "top_examples.json"

type entry struct {
	Score  int    `json:"score"`
	Subset string `json:"subset"`
}

// ExampleRepository writes each run to <root>/<run id>/top_examples.json.
type ExampleRepository struct {
	root string
}

// NewExampleRepository stores runs under root, creating it if needed.
func NewExampleRepository(root string) (*ExampleRepository, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.StorageError("create examples directory", err)
	}
	return &ExampleRepository{root: root}, nil
}

// Path returns the document path of a run. Save and List reject run IDs
// that are not UUIDs, so the path stays under root.
func (r *ExampleRepository) Path(runID core.RunID) string {
	return filepath.Join(r.root, runID.String(), FileName)
}

// Save replaces the stored examples of a run
func (r *ExampleRepository) Save(ctx context.Context, runID core.RunID, examples []core.Example) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runID, err := core.ParseRunID(runID.String())
	if err != nil {
		return err
	}
	path := r.Path(runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.StorageError("create run directory", err)
	}
	return WriteFile(path, examples)
}

// List returns the examples of a run ordered by rank
func (r *ExampleRepository) List(ctx context.Context, runID core.RunID) ([]core.Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runID, err := core.ParseRunID(runID.String())
	if err != nil {
		return nil, err
	}
	path := r.Path(runID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, core.NewNotFoundError("run", runID.String())
	}
	examples, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	for i := range examples {
		examples[i].RunID = runID
	}
	return examples, nil
}

// WriteFile writes examples to path keyed by rank.
func WriteFile(path string, examples []core.Example) error {
	doc := make(map[string]entry, len(examples))
	for _, e := range examples {
		doc[strconv.Itoa(e.Rank)] = entry{Score: e.Score, Subset: e.Subset}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.StorageError("encode examples", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.StorageError("write examples", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.StorageError("replace examples", err)
	}
	return nil
}

// ReadFile reads an examples document. Keys become ranks; the prime is
// left zero because the document does not record it.
func ReadFile(path string) ([]core.Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.StorageError("read examples", err)
	}
	var doc map[string]entry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.StorageError("decode examples", err)
	}

	examples := make([]core.Example, 0, len(doc))
	for key, e := range doc {
		rank, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.StorageError("decode examples", fmt.Errorf("key %q is not a rank", key))
		}
		example := core.NewExample(0, e.Score, e.Subset)
		example.Rank = rank
		examples = append(examples, example)
	}
	sort.Slice(examples, func(i, j int) bool { return examples[i].Rank < examples[j].Rank })
	return examples, nil
}

var _ ports.ExampleRepository = (*ExampleRepository)(nil)
