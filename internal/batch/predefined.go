package batch

import "sort"

// PredefinedJobs contains built-in jobs.
var PredefinedJobs = map[string]*Job{
	"historical": {
		Name:        "Historical field messages",
		Description: "Decrypts intercepted army and navy messages and checks the plaintext",
		Messages: []Message{
			{
				ID:   "barbarossa",
				Name: "Operation Barbarossa, 1941",
				Setup: &Setup{
					Model:        "I",
					Reflector:    "B",
					Rotors:       []string{"II", "IV", "V"},
					RingSettings: []int{2, 21, 12},
					Plugs:        "AV BS CG DL FU HZ IN KM OW RX",
				},
				Start:    "BLA",
				Text:     "EDPUDNRGYSZRCXNUYTPOMRMBOFKTBZREZKMLXLVEFGUEYSIOZVEQMIKUBPMMYLKLTTDEISMDICAGYKUACTCDOMOHWXMUUIAUBSTSLRNBZSZWNRFXWFYSSXJZVIJHIDISHPRKLKAYUPADTXQSPINQMATLPIFSVKDASCTACDPBOPVHJK",
				Expect:   "AUFKLXABTEILUNGXVONXKURTINOWAXKURTINOWAXNORDWESTLXSEBEZXSEBEZXUAFFLIEGERSTRASZERIQTUNGXDUBROWKIXDUBROWKIXOPOTSCHKAXOPOTSCHKAXUMXEINSAQTDREINULLXUHRANGETRETENXANGRIFFXINFXRGTX",
				Parallel: true,
			},
			{
				ID:   "u264",
				Name: "U-264, 1942",
				Setup: &Setup{
					Model:        "M4",
					Reflector:    "Thin-B",
					Rotors:       []string{"Beta", "II", "IV", "I"},
					RingSettings: []int{1, 1, 1, 22},
					Plugs:        "AT BL DF GJ HM NW OP QY RZ VX",
				},
				Start:    "VJNA",
				Text:     "NCZWVUSXPNYMINHZXMQXSFWXWLKJAHSHNMCOCCAKUQPMKCSMHKSEINJUSBLKIOSXCKUBHMLLXCSJUSRRDVKOHULXWCCBGVLIYXEOAHXRHKKFVDREWEZLXOBAFGYUJQUKGRTVUKAMEURBVEKSUHHVOYHABCJWMAKLFKLMYFVNRIZRVVRTKOFDANJMOLBGFFLEOPRGTFLVRHOWOPBEKVWMUQFMPWPARMFHAGKXIIBG",
				Expect:   "VONVONJLOOKSJHFFTTTEINSEINSDREIZWOYYQNNSNEUNINHALTXXBEIANGRIFFUNTERWASSERGEDRUECKTYWABOSXLETZTERGEGNERSTANDNULACHTDREINULUHRMARQUANTONJOTANEUNACHTSEYHSDREIYZWOZWONULGRADYACHTSMYSTOSSENACHXEKNSVIERMBFAELLTYNNNNNNOOOVIERYSICHTEINSNULL",
				Parallel: true,
			},
			{
				ID:   "scharnhorst",
				Name: "Scharnhorst, 1943",
				Setup: &Setup{
					Model:        "M3",
					Reflector:    "B",
					Rotors:       []string{"III", "VI", "VIII"},
					RingSettings: []int{1, 8, 13},
					Plugs:        "AN EZ HK IJ LR MQ OT PV SW UX",
				},
				Start:    "UZV",
				Text:     "YKAENZAPMSCHZBFOCUVMRMDPYCOFHADZIZMEFXTHFLOLPZLFGGBOTGOXGRETDWTJIQHLMXVJWKZUASTR",
				Expect:   "STEUEREJTANAFJORDJANSTANDORTQUAAACCCVIERNEUNNEUNZWOFAHRTZWONULSMXXSCHARNHORSTHCO",
				Parallel: true,
			},
			{
				ID:   "u534",
				Name: "U-534, 1945",
				Setup: &Setup{
					Model:        "M4",
					Reflector:    "Thin-C",
					Rotors:       []string{"Beta", "V", "VI", "VIII"},
					RingSettings: "AAEL",
					Plugs:        "AE BF CM DQ HU JN LX PR SZ VW",
				},
				Start:    "WIIJ",
				Text:     "LIRZMLWRCDMSNKLKBEBHRMFQFEQAZWXBGBIEXJPYFCQAAWSEKDEACOHDZKCZTOVSYHFNSCMAIMIMMAVJNLFXEWNPUIRINOZNCRVDHCGKCYRVUJQPVKEUIVVXGLQMKRJMDMLXLLRLYBKJWRXBQRZWGCCNDOPMGCKJ",
				Expect:   "UUUVIRSIBENNULEINSYNACHRXUUUSTUETZPUNKTLUEBECKVVVCHEFVIERXUUUFLOTTXXMITUUUVIERSIBENNULZWOUNDUUUVIERSIBENNULDREIZURFLENDERWERFTLUEBECKGEHENXFONDORTFOLGTWEITERESX",
				Parallel: true,
			},
			{
				ID:   "norrkoping-doep",
				Name: "Norrköping DOEP",
				Setup: &Setup{
					Model:        "M3",
					Reflector:    "B",
					Rotors:       []string{"VII", "IV", "VI"},
					RingSettings: "AGW",
					Plugs:        "BM DX EW GP JO KV NZ RT",
				},
				Start:    "NSH",
				Text:     "YEWZANTGDXWUVDSSYQELAMUOAMBVFZAJWFATABRMMBWXWTLFIOYBTEXXFFAOHADDXWWGBEROYDWLEUTP",
				Expect:   "KOFFERGRAMOPHONKEINSINNKTZCMYQWPJDZXQLXGJXKWXLQDHYKCMIRBYKFHCMQWHVXLRHGDXMQWCHYK",
				Parallel: true,
			},
			{
				ID:   "norrkoping-krlr",
				Name: "Norrköping KRLR",
				Setup: &Setup{
					Model:        "M3",
					Reflector:    "B",
					Rotors:       []string{"VII", "IV", "VI"},
					RingSettings: "AGW",
					Plugs:        "BM DX EW GP JO KV NZ RT",
				},
				Start:    "RPR",
				Text:     "PBQOMEWLLMJFBXKPZNBHRGLUGVHJBXYPSEACOXOTBQRWVTPVVYHLLDOCQQKIWVAMJNFADSUNAVMJGJIBMUGBWWRKJBZNHVELOGZHTISLTUWS",
				Expect:   "VERWALTUNGSAMTREICHSGERICHTARBEITSLAGERNICHTAUFSCHLAGENVCNSTDMQWZVGNVMBCPDGKPFQZWTRLDMFNGHSRDTFZGLDKCVLMNHGF",
				Parallel: true,
			},
		},
	},
}

// GetPredefinedJob returns a copy of a predefined job by name.
func GetPredefinedJob(name string) (*Job, bool) {
	job, ok := PredefinedJobs[name]
	if !ok {
		return nil, false
	}
	cp := *job
	cp.Messages = append([]Message(nil), job.Messages...)
	return &cp, true
}

// ListPredefinedJobs returns the names of the predefined jobs, sorted.
func ListPredefinedJobs() []string {
	names := make([]string, 0, len(PredefinedJobs))
	for name := range PredefinedJobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
