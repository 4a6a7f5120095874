package market

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleCSV = `datetime,open,high,low,close,volume
2019-09-08 00:00:00,10000.5,10500,9900,10400,1200.5
2019-09-11 00:00:00,10400,10600,10100,10200,900
2019-09-14 00:00:00,10200,10300,9800,9900,
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	s, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	b := s.Bars[0]
	assert.Equal(t, time.Date(2019, 9, 8, 0, 0, 0, 0, time.UTC), b.Time)
	assert.Equal(t, 10000.5, b.Open)
	assert.Equal(t, 10500.0, b.High)
	assert.Equal(t, 9900.0, b.Low)
	assert.Equal(t, 10400.0, b.Close)
	assert.Equal(t, 1200.5, b.Volume)
	assert.Equal(t, 0.0, s.Bars[2].Volume)
}

func TestReadCSVHeaderVariants(t *testing.T) {
	t.Parallel()

	in := "Timestamp,Open,High,Low,Close\n" +
		"2024-01-01T00:00:00Z,1,2,0.5,1.5\n" +
		"1704153600,1.5,2,1,1.8\n"
	s, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s.Bars[1].Time)
}

func TestReadCSVRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{
			name: "missing close column",
			in:   "timestamp,open,high,low\n2024-01-01,1,2,0.5\n",
			want: ErrMalformedBar,
		},
		{
			name: "missing time column",
			in:   "open,high,low,close\n1,2,0.5,1\n",
			want: ErrMalformedBar,
		},
		{
			name: "bad price",
			in:   "timestamp,open,high,low,close\n2024-01-01,1,2,abc,1\n",
			want: ErrMalformedBar,
		},
		{
			name: "bad timestamp",
			in:   "timestamp,open,high,low,close\nyesterday,1,2,0.5,1\n",
			want: ErrMalformedBar,
		},
		{
			name: "out of order",
			in: "timestamp,open,high,low,close\n" +
				"2024-01-02,1,2,0.5,1\n" +
				"2024-01-01,1,2,0.5,1\n",
			want: ErrOutOfOrder,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "BTC_3d.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	s, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "BTC_3d", s.Name)
	assert.Equal(t, 3, s.Len())
}

func TestLoadCSVXZ(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "BTC_3d.csv.xz")

	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	s, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "BTC_3d", s.Name)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 9900.0, s.Bars[2].Close)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
