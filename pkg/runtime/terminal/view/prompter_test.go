package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/archplan/pkg/services/catalog"
)

var testOptions = []catalog.Option{
	{Value: "sql", Label: "Relational"},
	{Value: "nosql", Label: "NoSQL"},
	{Value: "none", Label: "No database"},
}

func TestPrompter_Ask(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("  demo  \n"), &out)

	answer, err := p.Ask("Project name")
	require.NoError(t, err)
	assert.Equal(t, "demo", answer)
	assert.Contains(t, out.String(), "Project name: ")
}

func TestPrompter_AskDefault(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("\ncustom\n"), &out)

	answer, err := p.AskDefault("Region", "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", answer)

	answer, err = p.AskDefault("Region", "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "custom", answer)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), &strings.Builder{})
		got, err := p.Confirm("Deploy now?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestPrompter_Choose(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("2\n"), &out)

	value, err := p.Choose("Database", testOptions)
	require.NoError(t, err)
	assert.Equal(t, "nosql", value)
	assert.Contains(t, out.String(), "1) Relational")
	assert.Contains(t, out.String(), "3) No database")
}

func TestPrompter_Choose_RetriesOnBadInput(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("9\nsql\n"), &out)

	value, err := p.Choose("Database", testOptions)
	require.NoError(t, err)
	assert.Equal(t, "sql", value)
	assert.Contains(t, out.String(), "Pick a number between 1 and 3.")
}

func TestPrompter_Choose_EmptySkips(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), &strings.Builder{})
	value, err := p.Choose("Database", testOptions)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestPrompter_ChooseMany(t *testing.T) {
	p := NewPrompter(strings.NewReader("1, nosql, 9\n"), &strings.Builder{})
	values, err := p.ChooseMany("Services", testOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"sql", "nosql"}, values)

	p = NewPrompter(strings.NewReader("\n"), &strings.Builder{})
	values, err = p.ChooseMany("Services", testOptions)
	require.NoError(t, err)
	assert.Nil(t, values)
}
