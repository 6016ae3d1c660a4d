package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
)

func TestRunPreprocessesAndLexesWithoutAST(t *testing.T) {
	u := Unit{
		FileName:            "a.cpp",
		Source:              "#define N 3\nint x = N;\n",
		LexerFlags:          config.DefaultLexerFlags(),
		PreprocessorOptions: config.DefaultPreprocessorOptions(),
	}

	result := Run(u)
	require.NoError(t, result.Err)
	require.NotNil(t, result.TranslationUnit)
	require.Nil(t, result.Scope, "no AST was supplied, so binding never runs")
	assert.Equal(t, "a.cpp", result.FileName)
	assert.Greater(t, result.TranslationUnit.TokenCount(), 0)
}

func TestTokenizeIgnoresPreprocessorDirectives(t *testing.T) {
	toks := Tokenize(Unit{
		Source:     "#define N 3\nint x;\n",
		LexerFlags: config.DefaultLexerFlags(),
	})

	require.NotEmpty(t, toks)
	assert.Equal(t, cxtoken.EOF, toks[len(toks)-1].Kind)

	// Tokenize never runs the preprocessor, so the literal '#' from the
	// directive line shows up as its own token rather than being consumed.
	var sawHash bool
	for _, tok := range toks {
		if tok.Kind == cxtoken.Pound {
			sawHash = true
		}
	}
	assert.True(t, sawHash, "expected a raw '#' token since Tokenize bypasses the preprocessor")
}

func TestWorkerPoolRunsEveryUnitInOrder(t *testing.T) {
	units := []Unit{
		{FileName: "a.cpp", Source: "int a;\n", LexerFlags: config.DefaultLexerFlags(), PreprocessorOptions: config.DefaultPreprocessorOptions()},
		{FileName: "b.cpp", Source: "int b;\n", LexerFlags: config.DefaultLexerFlags(), PreprocessorOptions: config.DefaultPreprocessorOptions()},
		{FileName: "c.cpp", Source: "int c;\n", LexerFlags: config.DefaultLexerFlags(), PreprocessorOptions: config.DefaultPreprocessorOptions()},
	}

	wp := &WorkerPool{Concurrency: 2}
	results, err := wp.Run(context.Background(), units)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []string{"a.cpp", "b.cpp", "c.cpp"} {
		assert.Equal(t, want, results[i].FileName)
		assert.NotNil(t, results[i].TranslationUnit)
	}
}

func TestWorkerPoolHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := &WorkerPool{Concurrency: 1}
	_, err := wp.Run(ctx, []Unit{
		{FileName: "a.cpp", Source: "int a;\n", LexerFlags: config.DefaultLexerFlags(), PreprocessorOptions: config.DefaultPreprocessorOptions()},
	})
	assert.Error(t, err)
}
