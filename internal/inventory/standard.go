package inventory

// DefaultEntryDisc is the name of the straight-through entry disc.
const DefaultEntryDisc = "default"

// Historical wiring tables for the models I, M3 and M4. These strings must
// match the real machines letter for letter.
var (
	StandardEntryDiscs = []WiringSpec{
		{Name: DefaultEntryDisc, Wiring: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
	}

	StandardRotors = []RotorSpec{
		{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Turnovers: "Q"},
		{Name: "II", Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Turnovers: "E"},
		{Name: "III", Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Turnovers: "V"},
		{Name: "IV", Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", Turnovers: "J"},
		{Name: "V", Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", Turnovers: "Z"},
		{Name: "VI", Wiring: "JPGVOUMFYQBENHZRDKASXLICTW", Turnovers: "ZM"},
		{Name: "VII", Wiring: "NZJHGRCXMYSWBOUFAIVLPEKQDT", Turnovers: "ZM"},
		{Name: "VIII", Wiring: "FKQHTLXOCBJSPDZRAMEWNIUYGV", Turnovers: "ZM"},
		{Name: "Beta", Wiring: "LEYJVCNIXWPBQMDRTAKZGFUHOS"},
		{Name: "Gamma", Wiring: "FSOKANUERHMBTIYCWLQPZXVGJD"},
	}

	StandardReflectors = []WiringSpec{
		{Name: "A", Wiring: "EJMZALYXVBWFCRQUONTSPIKHGD"},
		{Name: "B", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"},
		{Name: "C", Wiring: "FVPJIAOYEDRZXWGCTKUQSBNMHL"},
		{Name: "Thin-B", Wiring: "ENKQAUYWJICOPBLMDXZVFTHRGS"},
		{Name: "Thin-C", Wiring: "RDOBJNTKVEHMLFCWZAXGYIPSUQ"},
	}
)

// LoadStandard adds the historical components to inv.
func LoadStandard(inv *Inventory) {
	for _, d := range StandardEntryDiscs {
		inv.AddEntryDisc(d.Name, d.Wiring)
	}
	for _, r := range StandardRotors {
		inv.AddRotor(r.Name, r.Wiring, r.Turnovers)
	}
	for _, r := range StandardReflectors {
		inv.AddReflector(r.Name, r.Wiring)
	}
}

// Standard returns a new Inventory holding the historical components.
func Standard() *Inventory {
	inv := New()
	LoadStandard(inv)
	return inv
}
