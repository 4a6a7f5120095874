package market

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ulikunitz/xz"
)

// timeColumns are the accepted names for the timestamp column, in order of
// preference.
var timeColumns = []string{"timestamp", "datetime", "time", "date"}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads a bar series from a CSV file. Files ending in .xz are
// decompressed on the fly. The returned series has been validated.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		r = xr
	}

	name := strings.TrimSuffix(filepath.Base(path), ".xz")
	name = strings.TrimSuffix(name, filepath.Ext(name))

	s, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = name
	return s, nil
}

// ReadCSV parses bars from CSV with a header row. Column names are matched
// case-insensitively; the timestamp column may be named timestamp,
// datetime, time or date. A volume column is optional.
func ReadCSV(r io.Reader) (*Series, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	cols := map[string]string{}
	for _, n := range df.Names() {
		cols[strings.ToLower(strings.TrimSpace(n))] = n
	}

	timeCol := ""
	for _, c := range timeColumns {
		if n, ok := cols[c]; ok {
			timeCol = n
			break
		}
	}
	if timeCol == "" {
		return nil, fmt.Errorf("%w: no timestamp column (want one of %s)",
			ErrMalformedBar, strings.Join(timeColumns, ","))
	}

	var prices [4][]string
	for i, c := range []string{"open", "high", "low", "close"} {
		n, ok := cols[c]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrMalformedBar, c)
		}
		prices[i] = df.Col(n).Records()
	}

	var volume []string
	if n, ok := cols["volume"]; ok {
		volume = df.Col(n).Records()
	}

	times := df.Col(timeCol).Records()
	bars := make([]Bar, df.Nrow())
	for i := range bars {
		t, err := ParseTime(times[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b := Bar{Time: t}
		dst := [4]*float64{&b.Open, &b.High, &b.Low, &b.Close}
		for k := range dst {
			v, err := parsePrice(prices[k][i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			*dst[k] = v
		}
		if volume != nil {
			if v, err := parsePrice(volume[i]); err == nil {
				b.Volume = v
			}
		}
		bars[i] = b
	}

	s := NewSeries("", bars)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseTime accepts RFC3339, a few common date/time layouts and unix
// seconds. Times without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrMalformedBar)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedBar, s)
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedBar, s)
	}
	return v, nil
}
