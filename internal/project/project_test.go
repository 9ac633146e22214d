package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "name": "Ridge",
  "drillholes": [
    {"id": "DH-1", "collar": {"x": 10, "y": 250, "z": -4}, "depth": 120, "azimuth": 45, "inclination": -60,
     "intervals": [{"from": 0, "to": 10, "lithology": "clay"}, {"from": 10, "to": 120}]},
    {"id": "DH-2", "collar": {"x": 0, "y": 245, "z": 0}, "depth": 80}
  ]
}`

func TestParseObject(t *testing.T) {
	p, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, "Ridge", p.Name)
	require.Len(t, p.Drillholes, 2)

	h := p.Drillholes[0]
	assert.Equal(t, "DH-1", h.ID)
	assert.Equal(t, Vec3{X: 10, Y: 250, Z: -4}, h.Collar)
	require.NotNil(t, h.Azimuth)
	assert.Equal(t, 45.0, *h.Azimuth)
	assert.Len(t, h.Intervals, 2)

	assert.Nil(t, p.Drillholes[1].Azimuth)
	assert.Nil(t, p.Drillholes[1].Inclination)
}

func TestParseBareList(t *testing.T) {
	p, err := Parse([]byte(`[{"id":"A","collar":{"x":1,"y":2,"z":3},"depth":5}]`))
	require.NoError(t, err)
	require.Len(t, p.Drillholes, 1)
	assert.Equal(t, "A", p.Drillholes[0].ID)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"drillholes": [`))
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSnapshotIsDeep(t *testing.T) {
	p, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	snap := p.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, p.Drillholes, snap)

	*p.Drillholes[0].Azimuth = 90
	p.Drillholes[0].Intervals[0].Lithology = "granite"
	assert.Equal(t, 45.0, *snap[0].Azimuth)
	assert.Equal(t, "clay", snap[0].Intervals[0].Lithology)
}

func TestSnapshotEmpty(t *testing.T) {
	var p *Project
	assert.Nil(t, p.Snapshot())
	assert.Nil(t, (&Project{}).Snapshot())
}

func TestFindAndDuplicates(t *testing.T) {
	p := &Project{Drillholes: []Drillhole{
		{ID: "A", Depth: 1},
		{ID: "B", Depth: 2},
		{ID: "A", Depth: 3},
	}}
	h, ok := p.Find("A")
	require.True(t, ok)
	assert.Equal(t, 1.0, h.Depth)

	_, ok = p.Find("Z")
	assert.False(t, ok)

	assert.Equal(t, []string{"A"}, p.DuplicateIDs())
	assert.Equal(t, 1.0, Index(p.Drillholes)["A"].Depth)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	var loads atomic.Int32
	var last atomic.Pointer[Project]
	w, err := Watch(path, 20*time.Millisecond, func(p *Project, err error) {
		if err == nil {
			last.Store(p)
			loads.Add(1)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"only","collar":{"x":0,"y":0,"z":0},"depth":1}]`), 0o644))
	require.Eventually(t, func() bool { return loads.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	p := last.Load()
	require.NotNil(t, p)
	require.Len(t, p.Drillholes, 1)
	assert.Equal(t, "only", p.Drillholes[0].ID)
}
