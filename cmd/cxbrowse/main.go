// Command cxbrowse is an interactive terminal browser over one
// translation unit's preprocessed token stream -- the "navigation"
// consumer spec section 1 names as a reason TranslationUnit exposes
// position mapping at all.
//
// There is no parser in this module to turn raw source into a cxast.Root
// (spec section 1 explicitly excludes it), so there is no symbol tree to
// browse for a file read straight off disk; tokens (and the diagnostics
// their preprocessing produced) are what this command can show without a
// parser. A host embedding this module that does have an AST can pass it
// through internal/pipeline itself and walk the resulting symbol.Scope
// directly -- cxbrowse is a standalone demonstration of the token/position
// layer, not a replacement for that.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/pipeline"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: cxbrowse <file>")
		os.Exit(2)
	}

	path := os.Args[1]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cxbrowse: %v\n", err)
		os.Exit(1)
	}

	client := logger.NewDeferClient()
	result := pipeline.Run(pipeline.Unit{
		FileName:            path,
		Source:              string(src),
		LexerFlags:          config.DefaultLexerFlags(),
		PreprocessorOptions: config.DefaultPreprocessorOptions(),
		Diagnostics:         client,
	})

	model := newModel(path, result, client.Diagnostics())
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cxbrowse: %v\n", err)
		os.Exit(1)
	}
}
