package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/domain/core"
	"pointconfig/internal/errors"
)

func TestExampleRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewExampleRepository(t.TempDir())
	require.NoError(t, err)
	runID := core.NewRunID()

	examples := []core.Example{core.NewExample(3, 480, "0110"), core.NewExample(3, 129, "1000")}
	examples[1].Rank = 1
	require.NoError(t, repo.Save(ctx, runID, examples))
	assert.FileExists(t, repo.Path(runID))

	got, err := repo.List(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 480, got[0].Score)
	assert.Equal(t, "0110", got[0].Subset)
	assert.Equal(t, examples[0].Hash, got[0].Hash)
	assert.Equal(t, 1, got[1].Rank)
	assert.Equal(t, runID, got[1].RunID)
}

func TestReadFileAcceptsTrainingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_exmples.json")
	doc := `{"1": {"score": 12, "subset": "0011"}, "0": {"score": 3, "subset": "1100"}, "10": {"score": 5, "subset": "0000"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	examples, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, examples, 3)
	assert.Equal(t, []int{0, 1, 10}, []int{examples[0].Rank, examples[1].Rank, examples[2].Rank})
	assert.Equal(t, "0011", examples[1].Subset)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.Equal(t, errors.CodeStorageError, errors.GetCode(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"x": {"score": 1, "subset": "0"}}`), 0o644))
	_, err = ReadFile(bad)
	assert.Equal(t, errors.CodeStorageError, errors.GetCode(err))
}

func TestListUnknownRun(t *testing.T) {
	repo, err := NewExampleRepository(t.TempDir())
	require.NoError(t, err)
	_, err = repo.List(context.Background(), core.NewRunID())
	assert.True(t, core.IsNotFoundError(err))
}

func TestRejectsRunIDsOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "runs")
	repo, err := NewExampleRepository(root)
	require.NoError(t, err)
	require.NoError(t, WriteFile(filepath.Join(parent, FileName), []core.Example{{Rank: 0, Score: 1, Subset: "0"}}))

	ctx := context.Background()
	for _, id := range []core.RunID{"..", "../runs", "not-a-uuid"} {
		_, err := repo.List(ctx, id)
		assert.True(t, core.IsValidationError(err), "list %q: %v", id, err)

		err = repo.Save(ctx, id, nil)
		assert.True(t, core.IsValidationError(err), "save %q: %v", id, err)
	}
	_, err = os.Stat(filepath.Join(root, "not-a-uuid"))
	assert.True(t, os.IsNotExist(err))
}
