package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpad/internal/types"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(width, height)
	t.Cleanup(sim.Fini)
	return sim
}

func statusLine(sim tcell.SimulationScreen) string {
	cells, width, height := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[(height-1)*width+x]
		if len(cell.Runes) > 0 {
			sb.WriteRune(cell.Runes[0])
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDraw_DefaultText(t *testing.T) {
	sim := newSimScreen(t, 80, 5)
	sb := New(DefaultConfig())

	sb.SetFileInfo("draft.txt", true)
	sb.SetCursorInfo(types.Position{Line: 2, Col: 4})
	sb.SetIssueInfo(3, false)

	width, height := sim.Size()
	sb.Draw(sim, width, height)
	sim.Show()

	line := statusLine(sim)
	assert.Contains(t, line, "draft.txt")
	assert.Contains(t, line, "[Modified]")
	assert.Contains(t, line, "Line: 3, Col: 5")
	assert.Contains(t, line, "3 issue(s)")
	assert.NotContains(t, line, "checking")
}

func TestDraw_NoNameAndChecking(t *testing.T) {
	sim := newSimScreen(t, 80, 5)
	sb := New(DefaultConfig())
	sb.SetIssueInfo(0, true)

	width, height := sim.Size()
	sb.Draw(sim, width, height)
	sim.Show()

	line := statusLine(sim)
	assert.Contains(t, line, "[No Name]")
	assert.Contains(t, line, "(checking...)")
}

func TestDraw_TemporaryMessageExpires(t *testing.T) {
	sim := newSimScreen(t, 80, 5)
	cfg := DefaultConfig()
	cfg.MessageTimeout = 20 * time.Millisecond
	sb := New(cfg)
	sb.SetFileInfo("draft.txt", false)

	sb.SetTemporaryMessage("Saved %s", "draft.txt")

	width, height := sim.Size()
	sb.Draw(sim, width, height)
	sim.Show()
	assert.Contains(t, statusLine(sim), "Saved draft.txt")

	time.Sleep(50 * time.Millisecond)
	sb.Draw(sim, width, height)
	sim.Show()

	line := statusLine(sim)
	assert.NotContains(t, line, "Saved")
	assert.Contains(t, line, "draft.txt")
	assert.Contains(t, line, "Line: 1, Col: 1")
}

func TestDraw_TruncatesToWidth(t *testing.T) {
	sim := newSimScreen(t, 10, 3)
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("a message far longer than the screen is wide")

	width, height := sim.Size()
	sb.Draw(sim, width, height)
	sim.Show()

	cells, w, _ := sim.GetContents()
	assert.Equal(t, 10, w)
	assert.NotEmpty(t, cells)
}
