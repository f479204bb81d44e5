package wormula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want Term
	}{
		{`3.0`, Float{Value: 3}},
		{`-1.5`, Float{Value: -1.5}},
		{`42`, Float{Value: 42}},
		{`"hello"`, String{Value: "hello"}},
		{`/^foo/`, Regex{Value: "^foo"}},
		{`x`, Ident{Name: "x"}},
	}
	for _, c := range cases {
		got, rest, err := Parse(c.src)
		require.NoError(t, err, c.src)
		assert.Empty(t, rest, c.src)
		assert.Equal(t, c.want, got, c.src)
	}
}

func TestParseComparisons(t *testing.T) {
	term, err := ParseFormula(`x == 3.0`)
	require.NoError(t, err)
	assert.Equal(t, Eq{Left: Ident{Name: "x"}, Right: Float{Value: 3}}, term)
}

func TestParseNotEqualDesugarsToNotEq(t *testing.T) {
	term, err := ParseFormula(`x != 3.0`)
	require.NoError(t, err)
	assert.Equal(t, Not{Inner: Eq{Left: Ident{Name: "x"}, Right: Float{Value: 3}}}, term)
}

func TestParseAndOr(t *testing.T) {
	term, err := ParseFormula(`x == 3.0 and y == "a"`)
	require.NoError(t, err)
	assert.Equal(t, And{
		Left:  Eq{Left: Ident{Name: "x"}, Right: Float{Value: 3}},
		Right: Eq{Left: Ident{Name: "y"}, Right: String{Value: "a"}},
	}, term)

	term, err = ParseFormula(`x == 3.0 or y == "a"`)
	require.NoError(t, err)
	assert.Equal(t, Or{
		Left:  Eq{Left: Ident{Name: "x"}, Right: Float{Value: 3}},
		Right: Eq{Left: Ident{Name: "y"}, Right: String{Value: "a"}},
	}, term)
}

func TestParseRegexComparison(t *testing.T) {
	term, err := ParseFormula(`name == /^foo/`)
	require.NoError(t, err)
	assert.Equal(t, Eq{Left: Ident{Name: "name"}, Right: Regex{Value: "^foo"}}, term)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseFormula(`x ===`)
	require.Error(t, err)
	assert.IsType(t, ParsingError{}, err)
}

func TestParsePrintReparseRoundTrip(t *testing.T) {
	formulas := []string{
		`x == 3.0`,
		`x != 3.0`,
		`x == 3.0 and y == "a"`,
	}
	for _, f := range formulas {
		term, err := ParseFormula(f)
		require.NoError(t, err, f)

		reparsed, err := ParseFormula(term.(interface{ String() string }).String())
		require.NoError(t, err, f)
		assert.Equal(t, term, reparsed, f)
	}
}
