package autocaption

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// PrimarySubtag returns the lower-cased portion of tag before the first hyphen.
// An empty tag yields an empty subtag.
func PrimarySubtag(tag string) string {
	primary, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(primary)
}

// Classify sorts the candidate tracks into their preference tiers.
// Tracks that are not subtitles or captions are skipped.
func Classify(preference string, tracks []*Track) Matches {
	var m Matches

	lang := strings.ToLower(preference)
	primary := PrimarySubtag(preference)

	for _, t := range tracks {
		if t == nil || !t.Kind.IsCandidate() {
			continue
		}

		trackLang := strings.ToLower(t.Language)

		// An empty primary subtag never matches, not even another empty one
		if primary != "" {
			// `en-US` == `en-us`
			if trackLang == lang {
				m.Exact = append(m.Exact, t)
			}
			// `en-US` ~= `en` ~= `en-GB`
			if PrimarySubtag(trackLang) == primary {
				m.TwoLetter = append(m.TwoLetter, t)
			}
		}
		// Honour the default regardless of language
		if t.Default {
			m.Default = append(m.Default, t)
		}
	}

	return m
}

// Best returns the first track of the highest-priority non-empty tier.
// Returns nil and TierNone if no tier has members.
func (m Matches) Best() (*Track, Tier) {
	switch {
	case len(m.Exact) > 0:
		return m.Exact[0], TierExact
	case len(m.TwoLetter) > 0:
		return m.TwoLetter[0], TierTwoLetter
	case len(m.Default) > 0:
		return m.Default[0], TierDefault
	}
	return nil, TierNone
}

// BestTrack finds the best matching track for preference without modifying anything
func BestTrack(preference string, tracks []*Track) Selection {
	best, tier := Classify(preference, tracks).Best()
	return Selection{
		Track:      best,
		Tier:       tier,
		Candidates: countCandidates(tracks),
	}
}

// Select shows the best matching track and disables every other track,
// candidates or not. When nothing matches, no track is modified.
func Select(preference string, tracks []*Track) Selection {
	sel := BestTrack(preference, tracks)
	if !sel.Selected() {
		log.Trace().
			Str("language", preference).
			Int("candidates", sel.Candidates).
			Msg("Auto caption: No matching track")
		return sel
	}

	for _, t := range tracks {
		if t == nil {
			continue
		}
		if t == sel.Track {
			t.Mode = ModeShowing
		} else {
			t.Mode = ModeDisabled
		}
	}

	log.Debug().
		Str("language", preference).
		Str("track_language", sel.Track.Language).
		Str("label", sel.Track.Label).
		Str("tier", sel.Tier.String()).
		Int("candidates", sel.Candidates).
		Msg("Auto caption: Selected track")
	return sel
}

func countCandidates(tracks []*Track) int {
	n := 0
	for _, t := range tracks {
		if t != nil && t.Kind.IsCandidate() {
			n++
		}
	}
	return n
}

// ShowingTrack returns the first track currently in showing mode
func ShowingTrack(tracks []*Track) *Track {
	for _, t := range tracks {
		if t != nil && t.Mode == ModeShowing {
			return t
		}
	}
	return nil
}
