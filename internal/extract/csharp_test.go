package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Lexical (C#) Extractor:
// - Extract a class declaration through its closing brace
// - Include leading /// doc-comment lines and attribute lines verbatim
// - Fall back to the method pattern when no type declaration matches
// - Extract semicolon-terminated declarations (delegates)
// - Survive unbalanced braces inside string literals
// - Survive braces inside verbatim strings
// - Report symbol-not-found for absent symbols
// - Report unterminated declarations
// - Treat regex metacharacters in symbol names as literal text

const csharpFixture = `using System;

namespace Billing
{
    /// <summary>
    /// Computes invoice totals.
    /// </summary>
    [Serializable]
    public sealed class InvoiceCalculator
    {
        private readonly string template = "closing } inside a string";

        public decimal Total { get; private set; }

        /// <summary>Adds a line item.</summary>
        public void AddItem(string name, decimal price)
        {
            var label = @"verbatim with "" quote and } brace";
            Total += price;
        }
    }

    public delegate void InvoiceHandler(object sender, EventArgs e);
}
`

func TestExtractCSharp_ClassWithDocComment(t *testing.T) {
	t.Parallel()

	text, err := ExtractCSharp(csharpFixture, "InvoiceCalculator")
	require.NoError(t, err)

	assert.True(t, len(text) > 0)
	assert.Contains(t, text, "/// <summary>")
	assert.Contains(t, text, "[Serializable]")
	assert.Contains(t, text, "public sealed class InvoiceCalculator")
	// The string literal's stray brace must not end the declaration early.
	assert.Contains(t, text, `Total += price;`)
	// The declaration ends at its own closing brace, not the namespace's.
	assert.NotContains(t, text, "delegate")
	assert.Equal(t, "}", text[len(text)-1:])
}

func TestExtractCSharp_MethodFallback(t *testing.T) {
	t.Parallel()

	text, err := ExtractCSharp(csharpFixture, "AddItem")
	require.NoError(t, err)

	assert.Contains(t, text, "/// <summary>Adds a line item.</summary>")
	assert.Contains(t, text, "public void AddItem(string name, decimal price)")
	assert.Contains(t, text, `@"verbatim with "" quote and } brace"`)
	assert.Equal(t, "}", text[len(text)-1:])
}

func TestExtractCSharp_SemicolonTerminated(t *testing.T) {
	t.Parallel()

	text, err := ExtractCSharp(csharpFixture, "InvoiceHandler")
	require.NoError(t, err)
	assert.Equal(t, "public delegate void InvoiceHandler(object sender, EventArgs e);", text)
}

func TestExtractCSharp_UnbalancedBraceInString(t *testing.T) {
	t.Parallel()

	source := "public class Weird\n{\n    string s = \"}}}\";\n    int n = 1;\n}\n"
	text, err := ExtractCSharp(source, "Weird")
	require.NoError(t, err)
	assert.Contains(t, text, "int n = 1;")
	assert.Equal(t, "}", text[len(text)-1:])
}

func TestExtractCSharp_SymbolNotFound(t *testing.T) {
	t.Parallel()

	_, err := ExtractCSharp(csharpFixture, "DoesNotExist")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestExtractCSharp_Unterminated(t *testing.T) {
	t.Parallel()

	source := "public class Truncated\n{\n    int n = 1;\n"
	_, err := ExtractCSharp(source, "Truncated")
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestExtractCSharp_SymbolNameIsLiteral(t *testing.T) {
	t.Parallel()

	// A name with regex metacharacters must not match anything here.
	_, err := ExtractCSharp(csharpFixture, "Invoice.*")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestExtractCSharp_TrailingWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	source := "public struct Point { public int X; }   \n\n"
	text, err := ExtractCSharp(source, "Point")
	require.NoError(t, err)
	assert.Equal(t, "public struct Point { public int X; }", text)
}
