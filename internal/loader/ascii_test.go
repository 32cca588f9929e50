package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiFixture = `20100315 090000;5999.5;6000.0;5998.0;5999.0;0
20100315 090100;5999.0;5999.5;5997.5;5998.0;0
20100315 090200;5998.0;6001.0;5998.0;6000.5;0
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "DAT_ASCII_GRXEUR_M1_2010.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestASCII_Load(t *testing.T) {
	bars, err := ASCII{}.Load(writeFixture(t, asciiFixture))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	want := time.Date(2010, 3, 15, 9, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, bars[0].Timestamp)
	assert.Equal(t, 5999.5, bars[0].Open)
	assert.Equal(t, 6000.0, bars[0].High)
	assert.Equal(t, 5998.0, bars[0].Low)
	assert.Equal(t, 5999.0, bars[0].Close)
	assert.Equal(t, 0.0, bars[0].Volume)
	assert.Equal(t, want+120_000, bars[2].Timestamp)
}

func TestASCII_Load_BadTimestamp(t *testing.T) {
	_, err := ASCII{}.Load(writeFixture(t, "2010-03-15;1;2;3;4;0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestASCII_Load_BadFieldCount(t *testing.T) {
	_, err := ASCII{}.Load(writeFixture(t, "20100315 090000;5999.5;6000.0\n"))
	assert.Error(t, err)
}

func TestASCII_Load_BadPrice(t *testing.T) {
	_, err := ASCII{}.Load(writeFixture(t, "20100315 090000;abc;6000.0;5998.0;5999.0;0\n"))
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	ld, err := ForPath("bars/GRXEUR_M1_2010_2018.parquet")
	require.NoError(t, err)
	assert.Equal(t, "parquet", ld.Name())

	ld, err = ForPath("raw/DAT_ASCII_GRXEUR_M1_2010.csv")
	require.NoError(t, err)
	assert.Equal(t, "ascii", ld.Name())

	_, err = ForPath("bars.xlsx")
	assert.Error(t, err)
}
