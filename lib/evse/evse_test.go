package evse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}

	_, err := ParseStatus("bogus")
	require.Error(t, err)
	_, err = ParseStatus("Available")
	require.Error(t, err)
	_, err = ParseStatus("")
	require.Error(t, err)
}

func TestStatusText(t *testing.T) {
	require.Equal(t, "Verfügbar", StatusAvailable.Text())
	require.Equal(t, "Besetzt", StatusCharging.Text())
	require.Equal(t, "Unbekannt", Status("garbage").Text())
}

func TestParseID(t *testing.T) {
	cases := []struct {
		id     string
		expect ID
	}{
		{"DE*MDS*E006234", ID{Country: "DE", Operator: "MDS", Serial: "E006234"}},
		{"DE*MDS*E006234*1", ID{Country: "DE", Operator: "MDS", Serial: "E006234*1"}},
		{"E006234", ID{Country: "E006234"}},
		{"", ID{}},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, ParseID(test.id))
	}

	require.Equal(t, "E006234", Serial("DE*MDS*E006234"))
	require.Equal(t, "standalone", Serial("standalone"))
}

func TestFallbackStatusIsDeterministic(t *testing.T) {
	first := FallbackStatus("DE*MDS*E006234")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, FallbackStatus("DE*MDS*E006234"))
	}
	require.NotEqual(t, StatusUnknown, first)
	require.NotEqual(t, StatusError, first)
}
