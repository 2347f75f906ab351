package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readygo/pkg/benchmark"
)

func TestLoad_Missing(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), ".readygo"))
	require.NoError(t, err)
	assert.Empty(t, b.Results)
}

func TestLoad_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".readygo")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, b.Results)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".readygo")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".readygo")
	data := `{"benchmark_results":[{"Name":"Formatting a string","MinimumTime":0.0001,"P80":0.00015}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	b, err := Load(path)
	require.NoError(t, err)
	require.Len(t, b.Results, 1)
	assert.Equal(t, benchmark.Result{Name: "Formatting a string", MinimumTime: 0.0001, P80: 0.00015}, b.Results[0])
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".readygo")

	b := &Baseline{}
	b.Replace([]benchmark.Result{
		{Name: "B1", MinimumTime: 1, P80: 2},
		{Name: "B2", MinimumTime: 3, P80: 4},
	})
	require.NoError(t, b.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"benchmark_results"`)
	assert.Contains(t, string(raw), `"minimumTime"`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.Results, loaded.Results)

	// Saving again replaces the file wholesale.
	b.Replace([]benchmark.Result{{Name: "B3", MinimumTime: 5, P80: 6}})
	require.NoError(t, b.Save(path))
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []benchmark.Result{{Name: "B3", MinimumTime: 5, P80: 6}}, loaded.Results)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestLookup(t *testing.T) {
	b := &Baseline{Results: []benchmark.Result{{Name: "Formatting A String", MinimumTime: 1, P80: 2}}}

	got := b.Lookup("formatting a string")
	require.NotNil(t, got)
	assert.Equal(t, 2.0, got.P80)

	got.P80 = 99
	assert.Equal(t, 2.0, b.Results[0].P80, "lookup returns a copy")

	assert.Nil(t, b.Lookup("missing"))

	var none *Baseline
	assert.Nil(t, none.Lookup("anything"))
}

func TestReplace_Copies(t *testing.T) {
	results := []benchmark.Result{{Name: "a"}}
	b := &Baseline{}
	b.Replace(results)
	results[0].Name = "changed"
	assert.Equal(t, "a", b.Results[0].Name)
}
