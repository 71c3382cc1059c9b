package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVQuotedFields(t *testing.T) {
	doc := "code,name,note\n" +
		"C001,\"Smith, Inc.\",\"says \"\"hi\"\"\"\n" +
		"C002,Plain,\n"

	rows, err := ParseCSV([]byte(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"C001", "Smith, Inc.", `says "hi"`}, rows[1])
	assert.Equal(t, []string{"C002", "Plain", ""}, rows[2])
}

func TestParseCSVKeepsBareQuotes(t *testing.T) {
	doc := "code,desc\nP1,Good item\nP2,PIPE 1/2\" brass\nP3,Another\n"

	rows, err := ParseCSV([]byte(doc))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"P2", `PIPE 1/2" brass`}, rows[2])
	assert.Equal(t, []string{"P3", "Another"}, rows[3])
}

func TestParseCSVRaggedRowsAndBOM(t *testing.T) {
	doc := "\xEF\xBB\xBFa,b,c\n1,2\n3,4,5,6\n"

	rows, err := ParseCSV([]byte(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0][0])
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestParseCSVEmpty(t *testing.T) {
	for _, doc := range []string{"", "   \n"} {
		rows, err := ParseCSV([]byte(doc))
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	}
}

func TestDropHeader(t *testing.T) {
	assert.Equal(t, [][]string{}, dropHeader(nil))
	assert.Equal(t, [][]string{}, dropHeader([][]string{{"h1", "h2"}}))
	assert.Equal(t, [][]string{{"v"}}, dropHeader([][]string{{"h"}, {"v"}}))
}
