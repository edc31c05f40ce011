package enigma_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/inventory"
)

// fixture is one known message from testdata/messages.yaml.
type fixture struct {
	Source       string   `yaml:"source"`
	Model        string   `yaml:"model"`
	Reflector    string   `yaml:"reflector"`
	Rotors       []string `yaml:"rotors"`
	RingSettings any      `yaml:"ring_settings"`
	Plugs        string   `yaml:"plugs"`
	Key          string   `yaml:"key"`
	Plaintext    string   `yaml:"plaintext"`
	Ciphertext   string   `yaml:"ciphertext"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "messages.yaml"))
	require.NoError(t, err)
	var f struct {
		Messages []fixture `yaml:"messages"`
	}
	require.NoError(t, yaml.Unmarshal(data, &f))
	require.NotEmpty(t, f.Messages)
	return f.Messages
}

func (f fixture) machine(t *testing.T, inv *inventory.Inventory) *enigma.Machine {
	t.Helper()
	m, err := enigma.New(f.Model, inv, enigma.Options{Reflector: f.Reflector, Logger: quiet})
	require.NoError(t, err)
	rings, err := enigma.ParsePositions(f.RingSettings)
	require.NoError(t, err)
	require.NoError(t, m.Configure(enigma.Settings{
		Rotors:       f.Rotors,
		RingSettings: rings,
		Plugs:        enigma.ParsePlugs(f.Plugs),
	}))
	return m
}

// MachineSuite exercises the assembled machine.
type MachineSuite struct {
	suite.Suite
	inv   *inventory.Inventory
	m     *enigma.Machine
	steps map[string]int
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupSuite() {
	s.inv = inventory.Standard()
}

func (s *MachineSuite) SetupTest() {
	m, err := enigma.New("I", s.inv, enigma.Options{Reflector: "B", Logger: quiet})
	s.Require().NoError(err)
	s.Require().NoError(m.Configure(enigma.Settings{Rotors: []string{"I", "II", "III"}}))
	s.m = m
	s.listen()
}

func (s *MachineSuite) listen() {
	s.steps = make(map[string]int)
	s.m.Listen("test", enigma.ListenerFunc(func(e enigma.Event) {
		if e.Kind == enigma.EventStep {
			s.steps[e.Name]++
		}
	}))
}

// TestStepFastestOnly: away from any notch only the rightmost rotor moves.
func (s *MachineSuite) TestStepFastestOnly() {
	_, err := s.m.Translate(enigma.Letters("AAA"), "A")
	s.Require().NoError(err)
	s.Require().Equal(map[string]int{"III": 1}, s.steps)
	s.Require().Equal("AAB", s.m.Windows())
}

// TestStepCarry: the fastest rotor leaving its notch carries once.
func (s *MachineSuite) TestStepCarry() {
	_, err := s.m.Translate(enigma.Letters("AAV"), "A")
	s.Require().NoError(err)
	s.Require().Equal(1, s.steps["II"])
	s.Require().Equal("ABW", s.m.Windows())
}

// TestDoubleStep: the middle rotor steps on two consecutive key presses.
func (s *MachineSuite) TestDoubleStep() {
	var doubles []string
	s.m.Listen("double", enigma.ListenerFunc(func(e enigma.Event) {
		if e.Kind == enigma.EventDoubleStep {
			doubles = append(doubles, e.Name)
		}
	}))

	_, err := s.m.Translate(enigma.Letters("ADV"), "AA")
	s.Require().NoError(err)
	s.Require().Equal(2, s.steps["II"])
	s.Require().Equal(1, s.steps["I"])
	s.Require().Equal([]string{"II"}, doubles)
	s.Require().Equal("BFX", s.m.Windows())
}

// TestDoubleStepOnFirstKey: the middle rotor starts on its notch, so it
// moves on the very first key press without any carry.
func (s *MachineSuite) TestDoubleStepOnFirstKey() {
	s.Require().NoError(s.m.Configure(enigma.Settings{
		Rotors:       []string{"III", "VI", "VIII"},
		RingSettings: enigma.Numbers{1, 8, 13},
	}))
	s.listen()

	_, err := s.m.Translate(enigma.Letters("UZV"), "A")
	s.Require().NoError(err)
	s.Require().Equal(1, s.steps["VI"])

	_, err = s.m.Translate(enigma.Letters("UZV"), "AA")
	s.Require().NoError(err)
	s.Require().Equal(2, s.steps["VI"], "second key press does not move VI again")
}

func (s *MachineSuite) TestKnownOutput() {
	out, err := s.m.Translate(enigma.Letters("AAA"), "AAAAA")
	s.Require().NoError(err)
	s.Require().Equal("BDZGO", out)
}

// TestWhitespaceIsDropped documents that tolerated spaces produce no output
// and do not step the rotors.
func (s *MachineSuite) TestWhitespaceIsDropped() {
	spaced, err := s.m.Translate(enigma.Letters("AAA"), "AA AAA")
	s.Require().NoError(err)
	s.Require().Equal("BDZGO", spaced)
}

func (s *MachineSuite) TestLowerCaseInput() {
	out, err := s.m.Translate(enigma.Letters("aaa"), "aaaaa")
	s.Require().NoError(err)
	s.Require().Equal("BDZGO", out)
}

func (s *MachineSuite) TestInvalidLetterWarns() {
	var buf bytes.Buffer
	m, err := enigma.New("I", s.inv, enigma.Options{Reflector: "B", Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	s.Require().NoError(err)
	s.Require().NoError(m.Configure(enigma.Settings{Rotors: []string{"I", "II", "III"}}))
	s.Require().NoError(m.SetStart(enigma.Letters("AAA")))

	_, ok := m.KeyPress('1')
	s.Require().False(ok)
	s.Require().Contains(buf.String(), "unexpected character")
	s.Require().Equal("AAA", m.Windows(), "rejected keys do not step")

	buf.Reset()
	_, ok = m.KeyPress(' ')
	s.Require().False(ok)
	s.Require().Empty(buf.String())
}

// TestListenersDroppedOnConfigure documents that Configure installs new
// components and callers must listen again.
func (s *MachineSuite) TestListenersDroppedOnConfigure() {
	s.Require().NoError(s.m.Configure(enigma.Settings{Rotors: []string{"I", "II", "III"}}))
	_, err := s.m.Translate(enigma.Letters("AAA"), "A")
	s.Require().NoError(err)
	s.Require().Empty(s.steps)

	s.listen()
	_, err = s.m.Translate(enigma.Letters("AAA"), "A")
	s.Require().NoError(err)
	s.Require().Equal(1, s.steps["III"])
}

func (s *MachineSuite) TestUnlisten() {
	s.m.Unlisten("test")
	_, err := s.m.Translate(enigma.Letters("AAA"), "AAA")
	s.Require().NoError(err)
	s.Require().Empty(s.steps)
}

// TestEventsReachEveryComponent checks one key press reports through the
// whole signal path, reflector included.
func (s *MachineSuite) TestEventsReachEveryComponent() {
	seen := make(map[enigma.ComponentType]int)
	s.m.Listen("types", enigma.ListenerFunc(func(e enigma.Event) {
		if e.Kind == enigma.EventTranslate {
			seen[e.Type]++
		}
	}))
	_, err := s.m.Translate(enigma.Letters("AAA"), "A")
	s.Require().NoError(err)
	s.Require().Equal(map[enigma.ComponentType]int{
		enigma.TypePlugBoard: 2,
		enigma.TypeEntryDisc: 2,
		enigma.TypeRotor:     6,
		enigma.TypeReflector: 1,
	}, seen)
}

func (s *MachineSuite) TestConfiguration() {
	s.Require().NoError(s.m.Configure(enigma.Settings{
		Rotors:       []string{"II", "IV", "V"},
		RingSettings: enigma.Numbers{2, 21, 12},
		Plugs:        enigma.ParsePlugs("AV BS"),
	}))
	cfg := s.m.Configuration()
	s.Require().Equal("B", cfg.Reflector)
	s.Require().Equal("default", cfg.EntryDisc)
	s.Require().Equal([]string{"II", "IV", "V"}, cfg.Rotors)
	s.Require().Equal([]int{1, 20, 11}, cfg.RingOffsets)
	s.Require().Equal([]string{"AV", "BS"}, cfg.Plugs)

	rotors := s.m.Rotors()
	s.Require().Len(rotors, 3)
	s.Require().Equal("V", rotors[0].Name(), "index 0 is the fastest rotor")
	s.Require().Equal(11, rotors[0].RingOffset())
	s.Require().Equal("II", rotors[2].Name())
	s.Require().Len(s.m.Chain(), 5)
}

func (s *MachineSuite) TestLetterRingSettings() {
	s.Require().NoError(s.m.Configure(enigma.Settings{
		Rotors:       []string{"II", "IV", "V"},
		RingSettings: enigma.Letters("BUL"),
	}))
	s.Require().Equal([]int{1, 20, 11}, s.m.Configuration().RingOffsets)
}

func (s *MachineSuite) TestConfigureErrors() {
	before := s.m.Configuration()

	err := s.m.Configure(enigma.Settings{})
	s.Require().ErrorIs(err, enigma.ErrNoRotors)

	err = s.m.Configure(enigma.Settings{Rotors: []string{"I", "IX", "III"}})
	s.Require().ErrorIs(err, inventory.ErrNotFound)

	err = s.m.Configure(enigma.Settings{Rotors: []string{"I", "II", "III"}, RingSettings: enigma.Numbers{1, 2}})
	s.Require().ErrorIs(err, enigma.ErrPositionCount)

	err = s.m.Configure(enigma.Settings{Rotors: []string{"I", "II", "III"}, Plugs: []string{"AB", "BC"}})
	s.Require().ErrorIs(err, enigma.ErrInvalidPlugs)

	s.Require().Equal(before, s.m.Configuration(), "failed configuration leaves the machine unchanged")
}

func (s *MachineSuite) TestSetStartErrors() {
	s.Require().ErrorIs(s.m.SetStart(enigma.Letters("AA")), enigma.ErrPositionCount)
	s.Require().ErrorIs(s.m.SetStart(nil), enigma.ErrPositionCount)
	s.Require().ErrorIs(s.m.SetStart(enigma.Letters("A1A")), enigma.ErrInvalidPosition)

	_, err := s.m.Translate(enigma.Letters("AA"), "HELLO")
	s.Require().ErrorIs(err, enigma.ErrPositionCount)
}

func (s *MachineSuite) TestNumericStart() {
	s.Require().NoError(s.m.SetStart(enigma.Numbers{1, 4, 22}))
	s.Require().Equal("ADV", s.m.Windows())
}

func TestNew_UnknownComponents(t *testing.T) {
	inv := inventory.Standard()
	_, err := enigma.New("x", inv, enigma.Options{Reflector: "D"})
	require.ErrorIs(t, err, inventory.ErrNotFound)

	_, err = enigma.New("x", inv, enigma.Options{Reflector: "B", EntryDisc: "qwertz"})
	require.ErrorIs(t, err, inventory.ErrNotFound)

	_, err = enigma.New("x", inv, enigma.Options{Reflector: "B", Alphabet: "AAB"})
	require.ErrorIs(t, err, enigma.ErrInvalidAlphabet)
}

// TestHistoricalMessages encrypts and decrypts every known message.
func TestHistoricalMessages(t *testing.T) {
	inv := inventory.Standard()
	for _, f := range loadFixtures(t) {
		f := f
		t.Run(f.Model+"/"+f.Key, func(t *testing.T) {
			m := f.machine(t, inv)
			start := enigma.Letters(f.Key)

			enc, err := m.Translate(start, f.Plaintext)
			require.NoError(t, err)
			require.Equal(t, f.Ciphertext, enc, "encrypting %s", f.Source)

			dec, err := m.Translate(start, f.Ciphertext)
			require.NoError(t, err)
			require.Equal(t, f.Plaintext, dec, "decrypting %s", f.Source)
		})
	}
}

// TestFourRotorFixedRotorNeverSteps runs a long M4 message and checks the
// leftmost Beta rotor never leaves its start position.
func TestFourRotorFixedRotorNeverSteps(t *testing.T) {
	inv := inventory.Standard()
	m, err := enigma.New("M4", inv, enigma.Options{Reflector: "Thin-B", Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, m.Configure(enigma.Settings{
		Rotors:       []string{"Beta", "II", "VII", "V"},
		RingSettings: enigma.Numbers{9, 18, 12, 8},
		Plugs:        enigma.ParsePlugs("YL SF VO AI BX WC KD MT JN PH"),
	}))
	require.True(t, m.Rotors()[3].IsFixed())

	text := strings.Repeat("ENIGMA", 200)
	enc, err := m.Translate(enigma.Letters("MKDM"), text)
	require.NoError(t, err)
	require.Equal(t, 'M', rune(m.Windows()[0]))

	dec, err := m.Translate(enigma.Letters("MKDM"), enc)
	require.NoError(t, err)
	require.Equal(t, text, dec)
}

// TestReciprocity checks decrypting with the same key restores the text for
// every start position of the fastest rotor.
func TestReciprocity(t *testing.T) {
	inv := inventory.Standard()
	m, err := enigma.New("M3", inv, enigma.Options{Reflector: "C", Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, m.Configure(enigma.Settings{
		Rotors:       []string{"VIII", "I", "VI"},
		RingSettings: enigma.Letters("QEZ"),
		Plugs:        enigma.ParsePlugs("AN EZ HK IJ LR MQ OT PV SW UX"),
	}))

	const text = "DERFUEHRERISTTOTDERKAMPFGEHTWEITERDOENITZ"
	for _, r := range enigma.StandardAlphabet {
		start := enigma.Letters("MZ" + string(r))
		enc, err := m.Translate(start, text)
		require.NoError(t, err)
		require.Len(t, enc, len(text))
		for i := range text {
			require.NotEqual(t, text[i], enc[i], "no letter encrypts to itself")
		}
		dec, err := m.Translate(start, enc)
		require.NoError(t, err)
		require.Equal(t, text, dec)
	}
}

// TestIndependentMachines checks machines built from one inventory keep
// separate rotor state.
func TestIndependentMachines(t *testing.T) {
	inv := inventory.Standard()
	a, err := enigma.New("a", inv, enigma.Options{Reflector: "B", Logger: quiet})
	require.NoError(t, err)
	b, err := enigma.New("b", inv, enigma.Options{Reflector: "B", Logger: quiet})
	require.NoError(t, err)
	settings := enigma.Settings{Rotors: []string{"I", "II", "III"}}
	require.NoError(t, a.Configure(settings))
	require.NoError(t, b.Configure(settings))
	require.NoError(t, a.SetStart(enigma.Letters("AAA")))
	require.NoError(t, b.SetStart(enigma.Letters("AAA")))

	for i := 0; i < 10; i++ {
		a.KeyPress('A')
	}
	require.Equal(t, "AAK", a.Windows())
	require.Equal(t, "AAA", b.Windows())
}

func TestParsePositions(t *testing.T) {
	cases := []struct {
		in   any
		want enigma.Positions
	}{
		{nil, nil},
		{"BLA", enigma.Letters("BLA")},
		{"b l a", enigma.Letters("bla")},
		{"2 21 12", enigma.Numbers{2, 21, 12}},
		{"2,21,12", enigma.Numbers{2, 21, 12}},
		{[]int{1, 8, 13}, enigma.Numbers{1, 8, 13}},
		{[]any{1, 8, 13}, enigma.Numbers{1, 8, 13}},
		{[]any{"A", "G", "W"}, enigma.Letters("AGW")},
		{[]string{"22", "26"}, enigma.Numbers{22, 26}},
		{enigma.Letters("ZZ"), enigma.Letters("ZZ")},
	}
	for _, tc := range cases {
		got, err := enigma.ParsePositions(tc.in)
		require.NoError(t, err, "input %v", tc.in)
		require.Equal(t, tc.want, got, "input %v", tc.in)
	}

	_, err := enigma.ParsePositions("1 X")
	require.ErrorIs(t, err, enigma.ErrInvalidPosition)
	_, err = enigma.ParsePositions(3.5)
	require.ErrorIs(t, err, enigma.ErrInvalidPosition)
}
