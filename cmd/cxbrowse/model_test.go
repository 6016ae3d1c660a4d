package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/pipeline"
)

func buildTestModel(t *testing.T, src string) model {
	t.Helper()
	client := logger.NewDeferClient()
	result := pipeline.Run(pipeline.Unit{
		FileName:            "t.cpp",
		Source:              src,
		LexerFlags:          config.DefaultLexerFlags(),
		PreprocessorOptions: config.DefaultPreprocessorOptions(),
		Diagnostics:         client,
	})
	m := newModel("t.cpp", result, client.Diagnostics())
	m.width, m.height = 80, 24
	return m
}

func TestNewModelBuildsOneRowPerToken(t *testing.T) {
	m := buildTestModel(t, "int x;\n")
	require.NotEmpty(t, m.rows)
	assert.Equal(t, "<eof>", m.rows[len(m.rows)-1].kind)
	assert.Equal(t, "x", m.rows[1].spelling)
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	m := buildTestModel(t, "int x;\n")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	mm := updated.(model)
	assert.Equal(t, 0, mm.cursor, "cursor should not go negative")

	for i := 0; i < len(m.rows)+5; i++ {
		updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyDown})
		mm = updated.(model)
	}
	assert.Equal(t, len(m.rows)-1, mm.cursor, "cursor should clamp at the last row")
}

func TestQuitKeySendsQuitCommand(t *testing.T) {
	m := buildTestModel(t, "int x;\n")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.Quit(), cmd())
}

func TestViewDoesNotPanic(t *testing.T) {
	m := buildTestModel(t, "#define N 1\nint x = N;\n")
	assert.NotPanics(t, func() {
		_ = m.View()
	})
}
