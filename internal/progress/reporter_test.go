package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter(&bytes.Buffer{}).(*CIReporter)
	assert.True(t, ok)
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok := NewReporter(&bytes.Buffer{}).(*TerminalReporter)
	assert.True(t, ok)
}

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf, every: 2}
	r.Start("2017", 3)
	r.Update(1)
	r.Update(2)
	r.Update(3)
	r.Finish()

	assert.Equal(t, "2017: importing 3 records\n2017: [2/3]\n2017: [3/3]\n2017: done\n", buf.String())
}

func TestTerminalReporterBeforeStart(t *testing.T) {
	r := &TerminalReporter{w: &bytes.Buffer{}}
	assert.NotPanics(t, func() {
		r.Update(1)
		r.Finish()
	})
}
