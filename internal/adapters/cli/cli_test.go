package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/adapters/metrics"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

const testCatalog = `
producers:
  - {name: assembler, craft_speed: 1.25, productivity_slots: 4}
  - {name: furnace, craft_speed: 2, productivity_slots: 2}
items:
  - {name: ore}
  - {name: plate, producer: furnace, recipe: {ore: 1}, yield: 1, craft_time: 3.2}
  - {name: gizmo, producer: assembler, recipe: {plate: 2}, yield: 1, craft_time: 5}
  - {name: belt, producer: assembler, recipe: {plate: 1}, yield: 2, craft_time: 0.5, boost_exempt: true}
targets: [gizmo, belt]
`

// testWorkspace writes a catalog and a config file whose database, log and
// metrics files all live in a temporary directory
type testWorkspace struct {
	dir        string
	configPath string
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()
	dir := t.TempDir()

	catalogFile := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogFile, []byte(testCatalog), 0o644))

	cfg := fmt.Sprintf(`
catalog:
  path: %s
planner:
  default_rate: 10
database:
  type: sqlite
  path: %s
logging:
  level: debug
  output: file
  file_path: %s
metrics:
  enabled: true
  textfile_path: %s
`,
		catalogFile,
		filepath.Join(dir, "history.db"),
		filepath.Join(dir, "cli.log"),
		filepath.Join(dir, "throughput.prom"),
	)
	configFile := filepath.Join(dir, "throughput.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(cfg), 0o644))

	t.Cleanup(func() { metrics.Registry = nil })

	return &testWorkspace{dir: dir, configPath: configFile}
}

// run executes one CLI invocation and releases its environment
func (w *testWorkspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", w.configPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	require.NoError(t, closeEnvironment())

	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "plan", "gizmo")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Gizmo at 10/s")
	assert.Contains(t, out, "gizmo: 10.000/s, 71.429 assembler with 4 productivity modules")
	assert.Contains(t, out, "└── plate: 14.286/s, 27.211 furnace with 2 productivity modules")
	assert.Contains(t, out, "    └── ore: 11.905/s")
	assert.Contains(t, out, "3 items (1 raw)")
	assert.Contains(t, out, "(100 to build)")
	assert.NotContains(t, out, "Plan saved")
}

func TestPlanCommand_FlatWithRate(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "plan", "belt", "--rate", "2", "--flat", "--precision", "1")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Belt at 2/s")
	assert.NotContains(t, out, "└──")
	assert.Regexp(t, regexp.MustCompile(`belt\s+2\.0\s+0\.4\s+1\s+assembler\s+0`), out)
}

func TestPlanCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown item", args: []string{"plan", "widget"}},
		{name: "zero rate", args: []string{"plan", "gizmo", "--rate", "0"}},
		{name: "negative count", args: []string{"expand", "gizmo", "--count=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ws := newTestWorkspace(t)

			// Act
			_, err := ws.run(t, tt.args...)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, production.ErrInvalidInput)
		})
	}
}

func TestExpandCommand(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "expand", "gizmo", "--count", "3", "--precision", "0")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "3 × Gizmo")
	assert.Contains(t, out, "└── plate: 6")
	assert.Contains(t, out, "    └── ore: 6")
}

func TestTargetsCommand(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "targets", "--rate", "10")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "== Gizmo ==")
	assert.Contains(t, out, "== Belt ==")
	assert.Contains(t, out, "Combined requirements for 2 targets at 10/s")
	// 14.286 plate/s for gizmos + 5 plate/s for belts
	assert.Regexp(t, regexp.MustCompile(`plate\s+19\.286`), out)
}

func TestTiersCommand(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "tiers", "gizmo")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "3 tiers")
	assert.Contains(t, out, "Tier 0 (0.00 machines): ore")
	assert.Contains(t, out, "Tier 2 (71.43 machines): gizmo")
}

func TestItemsAndProducersCommands(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	items, err := ws.run(t, "items", "--producer", "assembler")
	require.NoError(t, err)
	producers, err := ws.run(t, "producers")
	require.NoError(t, err)
	_, unknownErr := ws.run(t, "items", "--producer", "smelter")

	// Assert
	assert.Regexp(t, regexp.MustCompile(`gizmo\s+assembler\s+1\s+5\s+target\s+2 plate`), items)
	assert.Regexp(t, regexp.MustCompile(`belt\s+assembler\s+2\s+0\.5\s+yes target\s+1 plate`), items)
	assert.NotContains(t, items, "furnace")
	assert.Regexp(t, regexp.MustCompile(`furnace\s+2\s+2\s+1\.20\s+1\.4000`), producers)
	assert.ErrorContains(t, unknownErr, "unknown producer: smelter")
}

func TestHistoryCommands(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)
	out, err := ws.run(t, "plan", "gizmo", "--save")
	require.NoError(t, err)

	match := regexp.MustCompile(`Plan saved: (throughput-gizmo-[0-9a-f]{8})`).FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	id := match[1]

	// Act - list
	list, err := ws.run(t, "history", "list")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, list, id)

	// Act - show
	show, err := ws.run(t, "history", "show", id)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, show, "Kind:      throughput")
	assert.Regexp(t, regexp.MustCompile(`gizmo\s+10\.000\s+71\.429\s+assembler\s+4`), show)

	// Act - delete
	deleted, err := ws.run(t, "history", "delete", id)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, deleted, "deleted")

	empty, err := ws.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, empty, "No saved plans")
}

func TestConfigShowCommand(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	out, err := ws.run(t, "config", "show")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Items:            4")
	assert.Contains(t, out, "Default Rate:     10/s")
	assert.Contains(t, out, "Type:             sqlite")
}

func TestMetricsTextfileWrittenOnClose(t *testing.T) {
	// Arrange
	ws := newTestWorkspace(t)

	// Act
	_, err := ws.run(t, "plan", "gizmo")

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(ws.dir, "throughput.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `throughput_planner_computations_total{kind="throughput",status="success"} 1`)
	assert.Contains(t, string(data), "throughput_catalog_items 4")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://planner:xxxxx@db:5432/plans", maskPassword("postgres://planner:secret@db:5432/plans"))
	assert.Equal(t, "postgres://db:5432/plans", maskPassword("postgres://db:5432/plans"))
}

func TestTreePrefixes(t *testing.T) {
	// Arrange
	depths := []int{0, 1, 2, 3, 2, 3, 1, 2}

	// Act
	prefixes := treePrefixes(depths)

	// Assert
	assert.Equal(t, []string{
		"",
		"├── ",
		"│   ├── ",
		"│   │   └── ",
		"│   └── ",
		"│       └── ",
		"└── ",
		"    └── ",
	}, prefixes)
}
