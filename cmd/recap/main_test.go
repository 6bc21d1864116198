package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
)

func TestPrintRecap(t *testing.T) {
	var buf bytes.Buffer
	printRecap(&buf, &pipeline.Result{Text: "recap body", Filename: "recap_week_4.mp3"}, "/srv/out")

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, strings.Repeat("=", 60)+"\nFANTASY FOOTBALL WEEKLY RECAP\n"))
	assert.Equal(t, true, strings.Contains(out, "recap body\n"))
	assert.Equal(t, true, strings.Contains(out, "✅ Successfully generated audio recap: recap_week_4.mp3"))
	assert.Equal(t, true, strings.HasSuffix(out, "📁 File saved in: /srv/out\n"))
}

func TestPrintLeague(t *testing.T) {
	var buf bytes.Buffer
	printLeague(&buf, recap.League{Name: "Dynasty", Year: 2024, CurrentWeek: 1})
	assert.Equal(t, true, strings.Contains(buf.String(), "Season has not started"))

	buf.Reset()
	printLeague(&buf, recap.League{Name: "Dynasty", Year: 2024, CurrentWeek: 8})
	assert.Equal(t, true, strings.Contains(buf.String(), "week 7"))
}

func TestRootCmdRejectsUnknownPersonality(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd(&buf)
	cmd.SetArgs([]string{"--personality", "pirate"})

	err := cmd.Execute()

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, buf.Len())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", mask("abcd"))
	assert.Equal(t, "AEBxyz12...", mask("AEBxyz123456789"))
}
