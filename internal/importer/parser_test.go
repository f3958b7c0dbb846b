package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_WithHeader(t *testing.T) {
	in := "term,definition,pronunciation\nperro,dog,PEH-roh\ngato,cat,\n"

	drafts, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "perro", drafts[0].Term)
	assert.Equal(t, "dog", drafts[0].Definition)
	assert.Equal(t, "PEH-roh", drafts[0].Pronunciation)
	assert.Equal(t, "gato", drafts[1].Term)
	assert.Empty(t, drafts[1].Pronunciation)
}

func TestParseCSV_WithoutHeader(t *testing.T) {
	in := "bonjour,hello\nmerci,thank you\n"

	drafts, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "bonjour", drafts[0].Term)
	assert.Equal(t, "thank you", drafts[1].Definition)
}

func TestParseCSV_MissingDefinition(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("solo\n"))
	assert.Error(t, err)
}

func TestParseCSV_BlankFields(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("perro, \n"))
	assert.Error(t, err)
}

func TestParseCSV_Empty(t *testing.T) {
	drafts, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
