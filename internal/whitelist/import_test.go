package whitelist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csv := "Email,Name,Booking ID\n" +
		"Alice@Example.com,Alice,BK-1\n" +
		"bob@example.com,Bob,BK-2\n"

	entries, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice@example.com", entries[0].Email)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, "BK-1", entries[0].BookingID)
}

func TestParseCSVHeaderVariants(t *testing.T) {
	csv := "email,name,bookingId\nalice@example.com,Alice,BK-1\n"

	entries, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "BK-1", entries[0].BookingID)
}

func TestParseCSVSkipsIncompleteRows(t *testing.T) {
	csv := "Email,Name,Booking ID\n" +
		"alice@example.com,Alice,BK-1\n" +
		",Bob,BK-2\n" +
		"carol@example.com,,BK-3\n"

	entries, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice@example.com", entries[0].Email)
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Email,Name\nalice@example.com,Alice\n"))
	assert.Error(t, err)
}

func TestParseCSVEmpty(t *testing.T) {
	entries, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
