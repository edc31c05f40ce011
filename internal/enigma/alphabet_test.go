package enigma_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
)

func standardAlphabet(t *testing.T) enigma.Alphabet {
	t.Helper()
	a, err := enigma.NewAlphabet(enigma.StandardAlphabet)
	require.NoError(t, err)
	return a
}

// TestNewAlphabet_Errors verifies empty and repeated alphabets are rejected.
func TestNewAlphabet_Errors(t *testing.T) {
	for _, s := range []string{"", "ABCA"} {
		_, err := enigma.NewAlphabet(s)
		require.ErrorIs(t, err, enigma.ErrInvalidAlphabet, "alphabet %q", s)
	}
}

func TestAlphabet_IndexLetter(t *testing.T) {
	a := standardAlphabet(t)
	require.Equal(t, 26, a.Len())

	c, ok := a.Index('Q')
	require.True(t, ok)
	require.Equal(t, 16, c)

	_, ok = a.Index('q')
	require.False(t, ok, "lower case is not part of the alphabet")

	r, ok := a.Letter(25)
	require.True(t, ok)
	require.Equal(t, 'Z', r)

	_, ok = a.Letter(26)
	require.False(t, ok)
}

func TestAlphabet_Normalize(t *testing.T) {
	a := standardAlphabet(t)
	cases := map[int]int{0: 0, 25: 25, 26: 0, 27: 1, -1: 25, -27: 25, -52: 0, 100: 22}
	for in, want := range cases {
		require.Equal(t, want, a.Normalize(in), "Normalize(%d)", in)
	}
}

// TestBuildMap checks the small alphabet case the rotor tests rely on.
func TestBuildMap(t *testing.T) {
	a, err := enigma.NewAlphabet("ABCD")
	require.NoError(t, err)

	m, err := enigma.BuildMap(a, "BCDA")
	require.NoError(t, err)
	require.Equal(t, enigma.ConnectorMap{1, 2, 3, 0}, m)
	require.Equal(t, enigma.ConnectorMap{3, 0, 1, 2}, enigma.InvertMap(m))
}

func TestBuildMap_Errors(t *testing.T) {
	a := standardAlphabet(t)
	cases := []struct {
		name string
		perm string
	}{
		{"Short", "ABC"},
		{"Foreign", "ABCDEFGHIJKLMNOPQRSTUVWXY1"},
		{"Repeated", "AACDEFGHIJKLMNOPQRSTUVWXYZ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enigma.BuildMap(a, tc.perm)
			require.ErrorIs(t, err, enigma.ErrInvalidWiring)
		})
	}
}

func TestConnectorMap_InverseAndFixedPoints(t *testing.T) {
	a := standardAlphabet(t)
	m, err := enigma.BuildMap(a, "EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)
	inv := enigma.InvertMap(m)
	for i := range m {
		require.Equal(t, i, inv[m[i]])
		require.Equal(t, i, m[inv[i]])
	}
	require.True(t, inv.IsPermutation())
	require.Empty(t, enigma.IdentityMap(0).FixedPoints())
	require.Len(t, enigma.IdentityMap(26).FixedPoints(), 26)
	require.False(t, enigma.ConnectorMap{0, 0}.IsPermutation())
}
