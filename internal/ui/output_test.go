package ui

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)

	Success("installed")
	Warning("careful")
	Dim("detail")
	Printf("%s=%d\n", "count", 2)
	Line()

	restore()
	Print("after restore goes to the previous writer")

	text := buf.String()
	assert.Contains(t, text, "installed")
	assert.Contains(t, text, "careful")
	assert.Contains(t, text, "  detail")
	assert.Contains(t, text, "count=2\n")
	assert.NotContains(t, text, "after restore")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "x", Indent("x", 0))
	assert.Equal(t, "    x", Indent("x", 2))
}

func TestDevcatTheme(t *testing.T) {
	require.NotNil(t, DevcatTheme())
}

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{out: &buf}

	s.Start("Cloning catalog")
	s.Start("ignored")
	s.Stop()

	assert.Equal(t, 1, strings.Count(buf.String(), "Cloning catalog"))
	assert.Nil(t, s.program)
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := &Spinner{out: io.Discard}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()
	assert.Nil(t, s.program)
}

func TestStepModel_ShowsElapsedTime(t *testing.T) {
	start := time.Now()
	m := stepModel{spinner: spinner.New(), message: "Cloning catalog", started: start, now: start}
	assert.NotContains(t, m.View(), "(")

	m.now = start.Add(5 * time.Second)
	assert.Contains(t, m.View(), "(5s)")

	next, cmd := m.Update(stopMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
