package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	records, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	runsPath := filepath.Join(dir, "runs.csv")

	j, err := NewCSV(tradesPath, runsPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{tradeHeader}, readCSV(t, tradesPath))
	assert.Equal(t, [][]string{runHeader}, readCSV(t, runsPath))
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	runsPath := filepath.Join(dir, "runs.csv")

	j, err := NewCSV(tradesPath, runsPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade("T1", "R1", day0)))
	require.NoError(t, j.RecordRun(sampleRun("R1", day0)))
	require.NoError(t, j.RecordDecisions("R1", NewDecisionRecords("R1", sampleDecisions())))
	require.NoError(t, j.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 2)
	assert.Equal(t, []string{
		"T1", "R1", "LONG",
		"2021-04-01T00:00:00Z", "10000.000000",
		"2021-04-07T00:00:00Z", "10200.000000",
		"10200.000000", "9900.000000", "take_profit", "2.000000",
	}, trades[1])

	runs := readCSV(t, runsPath)
	require.Len(t, runs, 2)
	assert.Equal(t, "R1", runs[1][0])
	assert.Equal(t, "31", runs[1][5])
	assert.Equal(t, "LONG", runs[1][13])
}

func TestCSVJournalAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	runsPath := filepath.Join(dir, "runs.csv")

	for _, id := range []string{"R1", "R2"} {
		j, err := NewCSV(tradesPath, runsPath)
		require.NoError(t, err)
		require.NoError(t, j.RecordTrade(sampleTrade("T-"+id, id, day0)))
		require.NoError(t, j.RecordRun(sampleRun(id, day0)))
		require.NoError(t, j.Close())
	}

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 3)
	assert.Equal(t, tradeHeader, trades[0])
	assert.Equal(t, "T-R1", trades[1][0])
	assert.Equal(t, "T-R2", trades[2][0])

	runs := readCSV(t, runsPath)
	require.Len(t, runs, 3)
	assert.Equal(t, runHeader, runs[0])
	assert.Equal(t, "R2", runs[2][0])
}

func TestNewCSVBadPath(t *testing.T) {
	_, err := NewCSV(filepath.Join(t.TempDir(), "nope", "t.csv"), "r.csv")
	assert.Error(t, err)
}
