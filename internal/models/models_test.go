package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/models"
)

func TestStandard(t *testing.T) {
	reg := models.Standard()
	names := make([]string, 0, 3)
	for _, m := range reg.All() {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"I", "M3", "M4"}, names)

	_, ok := reg.Get("M5")
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	reg := models.Standard()
	i, _ := reg.Get("I")
	m3, _ := reg.Get("M3")
	m4, _ := reg.Get("M4")

	cases := []struct {
		name      string
		model     models.Model
		reflector string
		rotors    []string
		ok        bool
	}{
		{"IValid", i, "B", []string{"II", "IV", "V"}, true},
		{"INavyRotor", i, "B", []string{"II", "IV", "VI"}, false},
		{"IThinReflector", i, "Thin-B", []string{"II", "IV", "V"}, false},
		{"M3Valid", m3, "B", []string{"III", "VI", "VIII"}, true},
		{"M3TooMany", m3, "B", []string{"I", "III", "VI", "VIII"}, false},
		{"M3Duplicate", m3, "C", []string{"I", "I", "II"}, false},
		{"M4Valid", m4, "Thin-B", []string{"Beta", "II", "IV", "I"}, true},
		{"M4NoFixed", m4, "Thin-B", []string{"III", "II", "IV", "I"}, false},
		{"M4FixedInside", m4, "Thin-C", []string{"Beta", "Gamma", "IV", "I"}, false},
		{"M4WrongReflector", m4, "B", []string{"Beta", "II", "IV", "I"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.model.Validate(tc.reflector, tc.rotors)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, models.ErrUnsupported)
		})
	}
}
