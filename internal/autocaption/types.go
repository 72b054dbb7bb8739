// Package autocaption implements automatic caption/subtitle track selection.
// It picks the text track that best matches the player language and shows it,
// disabling every other track.
package autocaption

// Version is the plugin version reported to hosts.
const Version = "1.0.0"

// Kind is the kind of a text track as reported by the host player
type Kind string

// Track kinds. Only subtitles and captions take part in selection.
const (
	KindSubtitles    Kind = "subtitles"
	KindCaptions     Kind = "captions"
	KindDescriptions Kind = "descriptions"
	KindChapters     Kind = "chapters"
	KindMetadata     Kind = "metadata"
)

// IsCandidate reports whether tracks of this kind can be selected
func (k Kind) IsCandidate() bool {
	return k == KindSubtitles || k == KindCaptions
}

// Mode is the visibility mode of a text track
type Mode string

// Track modes. The selector only ever writes showing or disabled.
const (
	ModeShowing  Mode = "showing"
	ModeDisabled Mode = "disabled"
	ModeHidden   Mode = "hidden"
)

// Track represents a host-owned text track.
// The selector reads Kind, Language and Default and writes Mode.
type Track struct {
	ID       string `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Label    string `json:"label" yaml:"label"`
	Language string `json:"language" yaml:"language"`
	Default  bool   `json:"default" yaml:"default"`
	Mode     Mode   `json:"mode" yaml:"mode"`
}

// Tier is the preference tier a track matched
type Tier int

// Tiers in descending priority. TierFallback is reserved and never assigned.
const (
	TierNone Tier = iota
	TierExact
	TierTwoLetter
	TierDefault
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierTwoLetter:
		return "two-letter"
	case TierDefault:
		return "default"
	case TierFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Matches holds the tier memberships of the candidate tracks, each in original order.
// A track may appear in several tiers.
type Matches struct {
	Exact     []*Track
	TwoLetter []*Track
	Default   []*Track
}

// Selection describes the outcome of a selection run
type Selection struct {
	Track      *Track
	Tier       Tier
	Candidates int
}

// Selected reports whether a track was chosen
func (s Selection) Selected() bool {
	return s.Track != nil
}
