package sessions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csv := "sessionId,title,speakers,time,room,track\n" +
		"day1-keynote,Opening Keynote,Jane Doe,09:00,Main Hall,Keynote\n" +
		"day1-go,Go in Production,John Roe,11:00,Room 2,Backend\n"

	list, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "day1-keynote", list[0].SessionID)
	assert.Equal(t, "Opening Keynote", list[0].Title)
	assert.Equal(t, "Jane Doe", list[0].Speaker)
	assert.Equal(t, "Room 2", list[1].Room)
}

func TestParseCSVFallbacks(t *testing.T) {
	csv := "sessionId,title\nday1-keynote,Opening Keynote\n"

	list, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TBA", list[0].Speaker)
	assert.Equal(t, "TBA", list[0].Time)
	assert.Equal(t, "TBA", list[0].Room)
	assert.Equal(t, "General", list[0].Track)
}

func TestParseCSVSpeakerColumnVariant(t *testing.T) {
	csv := "Session ID,Title,Speaker\nday1-keynote,Opening Keynote,Jane Doe\n"

	list, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Speaker)
}

func TestParseCSVSkipsRowsWithoutKey(t *testing.T) {
	csv := "sessionId,title\n" +
		",Missing Key\n" +
		"day1-go,Go in Production\n"

	list, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "day1-go", list[0].SessionID)
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("title,speaker\nKeynote,Jane\n"))
	assert.Error(t, err)
}
