package pdxsave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdxtools/pdxsave/save"
)

const multiCountrySave = `
date="1836.1.1"
ENG={ money=50000.0 }
300={ name="London" }
FRA={ money=35000.0 }
flags={ some_flag=yes }
PRU={ money=25000.0 }
`

func TestMatchTags(t *testing.T) {
	require.True(t, MatchTags("ENG"))
	require.True(t, MatchTags("REB"))
	require.False(t, MatchTags("eng"))
	require.False(t, MatchTags("ENGL"))
	require.False(t, MatchTags("E1G"))
	require.False(t, MatchTags(""))
}

func TestMatchNumeric(t *testing.T) {
	require.True(t, MatchNumeric("300"))
	require.True(t, MatchNumeric("1"))
	require.False(t, MatchNumeric(""))
	require.False(t, MatchNumeric("30a"))
}

func TestMatchKeys(t *testing.T) {
	m := MatchKeys("worldmarket", "date")
	require.True(t, m("date"))
	require.False(t, m("ENG"))
}

func TestEntriesStreamsCountries(t *testing.T) {
	es := Entries([]byte(multiCountrySave), MatchTags)
	var keys []string
	var money []float64
	for es.Next() {
		keys = append(keys, es.Key())
		money = append(money, es.Node().GetFloat("money", 0))
	}
	require.NoError(t, es.Err())
	require.Equal(t, []string{"ENG", "FRA", "PRU"}, keys)
	require.Equal(t, []float64{50000, 35000, 25000}, money)
}

func TestEntriesEquivalentToFullParse(t *testing.T) {
	full, err := Parse([]byte(multiCountrySave))
	require.NoError(t, err)

	es := Entries([]byte(multiCountrySave), MatchTags)
	var streamed []*save.Node
	for es.Next() {
		want, ok := full.Get(es.Key())
		require.True(t, ok)
		require.True(t, want.Equal(es.Node()))
		streamed = append(streamed, es.Node())
	}
	require.NoError(t, es.Err())
	require.Len(t, streamed, 3)
}

func TestEntriesAll(t *testing.T) {
	es := Entries([]byte(multiCountrySave), MatchTags)
	var keys []string
	var money []float64
	for key, node := range es.All() {
		keys = append(keys, key)
		money = append(money, node.GetFloat("money", 0))
	}
	require.NoError(t, es.Err())
	require.Equal(t, []string{"ENG", "FRA", "PRU"}, keys)
	require.Equal(t, []float64{50000, 35000, 25000}, money)
}

func TestEntriesAllEarlyBreak(t *testing.T) {
	es := Entries([]byte(multiCountrySave), MatchTags)
	for key := range es.All() {
		require.Equal(t, "ENG", key)
		break
	}
	// The cursor stays valid after a break; Next resumes where the
	// range loop stopped.
	require.True(t, es.Next())
	require.Equal(t, "FRA", es.Key())
	require.NoError(t, es.Err())
}

func TestEntriesAllStrictError(t *testing.T) {
	es := Entries([]byte(`ENG={ ok=1 } FRA={ broken`), MatchTags)
	var keys []string
	for key := range es.All() {
		keys = append(keys, key)
	}
	require.Equal(t, []string{"ENG"}, keys)
	require.Error(t, es.Err())
}

func TestEntriesStrictError(t *testing.T) {
	es := Entries([]byte(`ENG={ ok=1 } FRA={ broken`), MatchTags)
	require.True(t, es.Next())
	require.False(t, es.Next())
	require.Error(t, es.Err())
}

func TestEntriesLenientDiagnostics(t *testing.T) {
	es := Entries([]byte(`ENG={ ok=1 } FRA={ broken`), MatchTags, Lenient())
	require.True(t, es.Next())
	require.False(t, es.Next())
	require.NoError(t, es.Err())
	diags := es.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, CodeUnterminatedBlock, diags[0].Code)
}

func TestEntriesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.v2")
	require.NoError(t, os.WriteFile(path, []byte(multiCountrySave), 0o644))

	es, err := EntriesFile(path, MatchTags)
	require.NoError(t, err)
	count := 0
	for es.Next() {
		count++
	}
	require.NoError(t, es.Err())
	require.Equal(t, 3, count)
}
