package enigma_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
)

func TestPlugBoard_PassThrough(t *testing.T) {
	pb := enigma.NewPlugBoard("plugboard", standardAlphabet(t), quiet)
	require.NoError(t, pb.Configure(nil))
	for c := 0; c < 26; c++ {
		require.Equal(t, c, pb.Encode(enigma.Right, c))
		require.Equal(t, c, pb.Encode(enigma.Left, c))
	}
}

func TestPlugBoard_Pairs(t *testing.T) {
	a := standardAlphabet(t)
	pb := enigma.NewPlugBoard("plugboard", a, quiet)
	pairs := enigma.ParsePlugs("AV BS CG DL FU HZ IN KM OW RX")
	require.NoError(t, pb.Configure(pairs))
	require.Equal(t, pairs, pb.Pairs())

	for _, pair := range pairs {
		left, _ := a.Index(rune(pair[0]))
		right, _ := a.Index(rune(pair[1]))
		require.Equal(t, right, pb.Encode(enigma.Right, left))
		require.Equal(t, left, pb.Encode(enigma.Right, right))
		require.Equal(t, left, pb.Encode(enigma.Left, right))
		require.Equal(t, right, pb.Encode(enigma.Left, left))
	}

	unplugged, _ := a.Index('E')
	require.Equal(t, unplugged, pb.Encode(enigma.Right, unplugged))

	m := pb.Map()
	require.Equal(t, m, enigma.InvertMap(m), "plugboard wiring is its own inverse")
}

func TestPlugBoard_LowerCasePairs(t *testing.T) {
	pb := enigma.NewPlugBoard("plugboard", standardAlphabet(t), quiet)
	require.NoError(t, pb.Configure([]string{"ab"}))
	require.Equal(t, []string{"AB"}, pb.Pairs())
	require.Equal(t, 1, pb.Encode(enigma.Right, 0))
}

// TestPlugBoard_Rejects documents that a letter may only be plugged once;
// the earlier wiring stays in place after a rejected configuration.
func TestPlugBoard_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		pairs []string
	}{
		{"Overlap", []string{"AB", "AC"}},
		{"OverlapSecondLetter", []string{"AB", "CB"}},
		{"SelfPair", []string{"AA"}},
		{"Single", []string{"A"}},
		{"Triple", []string{"ABC"}},
		{"Foreign", []string{"A1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pb := enigma.NewPlugBoard("plugboard", standardAlphabet(t), quiet)
			require.NoError(t, pb.Configure([]string{"XY"}))
			require.ErrorIs(t, pb.Configure(tc.pairs), enigma.ErrInvalidPlugs)
			require.Equal(t, []string{"XY"}, pb.Pairs())
			require.Equal(t, 24, pb.Encode(enigma.Right, 23))
		})
	}
}

func TestPlugBoard_Events(t *testing.T) {
	pb := enigma.NewPlugBoard("plugboard", standardAlphabet(t), quiet)
	require.NoError(t, pb.Configure([]string{"AB"}))

	var kinds []enigma.EventKind
	pb.Listen("test", enigma.ListenerFunc(func(e enigma.Event) {
		kinds = append(kinds, e.Kind)
		if e.Kind == enigma.EventTranslate {
			require.Equal(t, "A", e.Input)
			require.Equal(t, "B", e.Output)
			require.Equal(t, enigma.TypePlugBoard, e.Type)
		}
	}))
	pb.Encode(enigma.Right, 0)
	require.Equal(t, []enigma.EventKind{enigma.EventInput, enigma.EventOutput, enigma.EventTranslate}, kinds)
}
