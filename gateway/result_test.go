package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		count int
		first string
	}{
		{"array", `[{"a":1},{"a":2}]`, 2, `{"a":1}`},
		{"object", ` {"a":1} `, 1, `{"a":1}`},
		{"ndjson", "{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n", 3, `{"a":1}`},
		{"empty array", `[]`, 0, ""},
		{"empty body", "  \n", 0, ""},
		{"scalars", `["done", 4]`, 2, `"done"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, res, tt.count)
			if tt.count > 0 {
				assert.Equal(t, tt.first, res[0].Raw)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	res, err := Parse([]byte(`{"name":"run","stats":{"trades":3},"pnl":-1.5}`))
	require.NoError(t, err)
	require.Len(t, res, 1)

	f := res[0].Fields
	assert.Equal(t, "run", f["name"])
	assert.Equal(t, `{"trades":3}`, f["stats"])
	assert.Equal(t, "-1.5", f["pnl"])
	assert.Equal(t, int64(3), res[0].Get("stats.trades").Int())
}

func TestParseScalarHasNoFields(t *testing.T) {
	res, err := Parse([]byte(`["done"]`))
	require.NoError(t, err)
	assert.Nil(t, res[0].Fields)
	assert.Equal(t, "done", res[0].Get("@this").String())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("{\"a\":1}\n{broken"))
	assert.ErrorContains(t, err, "decode response")

	_, err = Parse([]byte("<>"))
	assert.Error(t, err)
}
