package autocaption

import (
	"testing"
)

func subs(lang string) *Track {
	return &Track{Kind: KindSubtitles, Language: lang, Mode: ModeDisabled}
}

func TestPrimarySubtag(t *testing.T) {
	tests := []struct {
		tag      string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"DE-at", "de"},
		{"zh-Hant-TW", "zh"},
		{"", ""},
		{"-us", ""},
	}

	for _, tt := range tests {
		if got := PrimarySubtag(tt.tag); got != tt.expected {
			t.Errorf("PrimarySubtag(%q) = %q, want %q", tt.tag, got, tt.expected)
		}
	}
}

func TestSelect_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		preference string
		tracks     []*Track
		expected   string // language of the showing track, "" for none
		tier       Tier
	}{
		{
			name:       "Matching language selected",
			preference: "fr",
			tracks:     []*Track{subs("de"), subs("fr"), subs("it")},
			expected:   "fr",
			tier:       TierExact,
		},
		{
			name:       "Exact match beats two letter match",
			preference: "de-at",
			tracks:     []*Track{subs("de"), subs("de-at")},
			expected:   "de-at",
			tier:       TierExact,
		},
		{
			name:       "Two letter fallback when no exact match",
			preference: "de-de",
			tracks:     []*Track{subs("fr"), subs("de-at")},
			expected:   "de-at",
			tier:       TierTwoLetter,
		},
		{
			name:       "Case insensitive exact match",
			preference: "de-de",
			tracks:     []*Track{subs("fr"), subs("de-DE")},
			expected:   "de-DE",
			tier:       TierExact,
		},
		{
			name:       "Uppercase preference",
			preference: "FR-CA",
			tracks:     []*Track{subs("fr"), subs("fr-ca")},
			expected:   "fr-ca",
			tier:       TierExact,
		},
		{
			name:       "No match leaves tracks alone",
			preference: "xx",
			tracks:     []*Track{subs("fr"), subs("de")},
			expected:   "",
			tier:       TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(tt.preference, tt.tracks)

			if sel.Tier != tt.tier {
				t.Fatalf("expected tier %s, got %s", tt.tier, sel.Tier)
			}
			showing := ShowingTrack(tt.tracks)
			if tt.expected == "" {
				if showing != nil {
					t.Fatalf("expected no showing track, got %q", showing.Language)
				}
				return
			}
			if showing == nil {
				t.Fatalf("expected %q to be showing, got none", tt.expected)
			}
			if showing.Language != tt.expected {
				t.Fatalf("expected %q to be showing, got %q", tt.expected, showing.Language)
			}
			if sel.Track != showing {
				t.Fatalf("selection does not point at the showing track")
			}
		})
	}
}

func TestSelect_ExactBeatsEarlierMatches(t *testing.T) {
	def := &Track{Kind: KindCaptions, Language: "es", Default: true}
	two := subs("en-GB")
	exact := subs("en-US")
	tracks := []*Track{def, two, exact}

	sel := Select("en-us", tracks)

	if sel.Track != exact {
		t.Fatalf("expected exact track, got %q", sel.Track.Language)
	}
	if def.Mode != ModeDisabled || two.Mode != ModeDisabled {
		t.Fatalf("expected other tracks disabled, got %s and %s", def.Mode, two.Mode)
	}
}

func TestSelect_FirstTwoLetterMatchWins(t *testing.T) {
	first := subs("pt-PT")
	second := subs("pt-BR")
	tracks := []*Track{subs("es"), first, second}

	sel := Select("pt", tracks)

	if sel.Track != first {
		t.Fatalf("expected first two letter match, got %q", sel.Track.Language)
	}
	if sel.Tier != TierTwoLetter {
		t.Fatalf("expected two-letter tier, got %s", sel.Tier)
	}
}

func TestSelect_DefaultTierReachable(t *testing.T) {
	plain := subs("fr")
	firstDefault := &Track{Kind: KindSubtitles, Language: "de", Default: true}
	secondDefault := &Track{Kind: KindCaptions, Language: "it", Default: true}
	tracks := []*Track{plain, firstDefault, secondDefault}

	sel := Select("ja", tracks)

	if sel.Track != firstDefault {
		t.Fatalf("expected first default track to be selected")
	}
	if sel.Tier != TierDefault {
		t.Fatalf("expected default tier, got %s", sel.Tier)
	}
	if firstDefault.Mode != ModeShowing || plain.Mode != ModeDisabled || secondDefault.Mode != ModeDisabled {
		t.Fatalf("unexpected modes: %s %s %s", plain.Mode, firstDefault.Mode, secondDefault.Mode)
	}
}

func TestSelect_LanguageMatchBeatsDefault(t *testing.T) {
	def := &Track{Kind: KindSubtitles, Language: "en", Default: true}
	match := subs("nl-BE")

	sel := Select("nl-NL", []*Track{def, match})

	if sel.Track != match {
		t.Fatalf("expected two letter match over default, got %q", sel.Track.Language)
	}
}

func TestSelect_NoMatchPreservesModes(t *testing.T) {
	tracks := []*Track{
		{Kind: KindSubtitles, Language: "fr", Mode: ModeShowing},
		{Kind: KindCaptions, Language: "de", Mode: ModeHidden},
		{Kind: KindChapters, Language: "xx", Mode: ModeShowing},
	}

	sel := Select("xx", tracks)

	if sel.Selected() {
		t.Fatalf("expected no selection, got %q", sel.Track.Language)
	}
	if tracks[0].Mode != ModeShowing || tracks[1].Mode != ModeHidden || tracks[2].Mode != ModeShowing {
		t.Fatalf("modes changed: %s %s %s", tracks[0].Mode, tracks[1].Mode, tracks[2].Mode)
	}
}

func TestSelect_NonCandidatesNeverSelectedAndDisabled(t *testing.T) {
	chapters := &Track{Kind: KindChapters, Language: "en", Default: true, Mode: ModeShowing}
	metadata := &Track{Kind: KindMetadata, Language: "en", Mode: ModeHidden}
	desc := &Track{Kind: KindDescriptions, Language: "en", Mode: ModeShowing}
	captions := &Track{Kind: KindCaptions, Language: "en-AU"}
	tracks := []*Track{chapters, metadata, desc, captions}

	sel := Select("en", tracks)

	if sel.Track != captions {
		t.Fatalf("expected captions track to be selected")
	}
	if sel.Candidates != 1 {
		t.Fatalf("expected 1 candidate, got %d", sel.Candidates)
	}
	for _, tr := range []*Track{chapters, metadata, desc} {
		if tr.Mode != ModeDisabled {
			t.Fatalf("expected %s track disabled, got %s", tr.Kind, tr.Mode)
		}
	}
}

func TestSelect_OnlyNonCandidatesMatch(t *testing.T) {
	tracks := []*Track{
		{Kind: KindChapters, Language: "en", Mode: ModeHidden},
		{Kind: KindMetadata, Language: "en", Default: true, Mode: ModeHidden},
	}

	sel := Select("en", tracks)

	if sel.Selected() {
		t.Fatalf("expected non-candidate tracks to be ignored")
	}
	if tracks[0].Mode != ModeHidden || tracks[1].Mode != ModeHidden {
		t.Fatalf("expected modes untouched")
	}
}

func TestSelect_Idempotent(t *testing.T) {
	tracks := []*Track{
		subs("de"),
		{Kind: KindCaptions, Language: "de-CH", Default: true},
		{Kind: KindChapters, Language: "de"},
		subs("de-ch"),
	}

	first := Select("de-ch", tracks)
	modes := make([]Mode, len(tracks))
	for i, tr := range tracks {
		modes[i] = tr.Mode
	}

	second := Select("de-ch", tracks)

	if first.Track != second.Track {
		t.Fatalf("expected the same track on both runs")
	}
	for i, tr := range tracks {
		if tr.Mode != modes[i] {
			t.Fatalf("track %d mode changed from %s to %s", i, modes[i], tr.Mode)
		}
	}
}

func TestSelect_AtMostOneShowing(t *testing.T) {
	tracks := []*Track{
		{Kind: KindSubtitles, Language: "en", Mode: ModeShowing},
		{Kind: KindSubtitles, Language: "en", Mode: ModeShowing},
		{Kind: KindCaptions, Language: "en", Mode: ModeShowing},
	}

	sel := Select("en", tracks)

	if sel.Track != tracks[0] {
		t.Fatalf("expected first exact match to win the tie")
	}
	showing := 0
	for _, tr := range tracks {
		if tr.Mode == ModeShowing {
			showing++
		}
	}
	if showing != 1 {
		t.Fatalf("expected exactly one showing track, got %d", showing)
	}
}

func TestSelect_EmptyPreferenceOnlyHonoursDefault(t *testing.T) {
	unlabeled := subs("")
	def := &Track{Kind: KindSubtitles, Language: "sv", Default: true}

	sel := Select("", []*Track{unlabeled, def})

	if sel.Track != def {
		t.Fatalf("expected default track for empty preference")
	}

	sel = Select("", []*Track{subs(""), subs("en")})
	if sel.Selected() {
		t.Fatalf("expected no selection for empty preference without defaults")
	}

	// A tag without a primary subtag matches nothing, even the same literal tag
	sel = Select("-US", []*Track{subs("-us"), subs("en-US")})
	if sel.Selected() {
		t.Fatalf("expected no selection for a preference without a primary subtag, got %q", sel.Track.Language)
	}
}

func TestSelect_EmptyTrackList(t *testing.T) {
	sel := Select("en", nil)
	if sel.Selected() || sel.Candidates != 0 {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
}

func TestClassify_Memberships(t *testing.T) {
	exact := &Track{Kind: KindSubtitles, Language: "en-US", Default: true}
	two := subs("en")
	other := subs("fr")
	m := Classify("en-us", []*Track{exact, two, other})

	if len(m.Exact) != 1 || m.Exact[0] != exact {
		t.Fatalf("unexpected exact tier: %v", m.Exact)
	}
	if len(m.TwoLetter) != 2 || m.TwoLetter[0] != exact || m.TwoLetter[1] != two {
		t.Fatalf("unexpected two-letter tier: %v", m.TwoLetter)
	}
	if len(m.Default) != 1 || m.Default[0] != exact {
		t.Fatalf("unexpected default tier: %v", m.Default)
	}
}

func TestBestTrack_DoesNotMutate(t *testing.T) {
	tr := subs("en")
	sel := BestTrack("en", []*Track{tr})

	if sel.Track != tr {
		t.Fatalf("expected track to be found")
	}
	if tr.Mode != ModeDisabled {
		t.Fatalf("expected mode untouched, got %s", tr.Mode)
	}
}
