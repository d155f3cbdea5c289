package config

import "fmt"

// ReactionType decides when a contact reaction fires
type ReactionType uint8

const (
	ReactionNone        ReactionType = iota // Fires on every contact
	ReactionProbability                     // Bernoulli trial with p = threshold
	ReactionEnergy                          // Normal collision energy at least threshold
)

var reactionNames = [...]string{"none", "probability", "energy"}

func (t ReactionType) String() string {
	if int(t) < len(reactionNames) {
		return reactionNames[t]
	}
	return fmt.Sprintf("reaction(%d)", t)
}

// MarshalText implements encoding.TextMarshaler
func (t ReactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ReactionType) UnmarshalText(text []byte) error {
	for i, name := range reactionNames {
		if name == string(text) {
			*t = ReactionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown reaction type %q", text)
}

// MutationType decides how the mutation delay is drawn
type MutationType uint8

const (
	MutationTime        MutationType = iota // Fixed delay tau
	MutationProbability                     // Exponential delay with mean tau
)

func (t MutationType) String() string {
	switch t {
	case MutationTime:
		return "time"
	case MutationProbability:
		return "probability"
	}
	return fmt.Sprintf("mutation(%d)", t)
}

// MarshalText implements encoding.TextMarshaler
func (t MutationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *MutationType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "time":
		*t = MutationTime
	case "probability":
		*t = MutationProbability
	default:
		return fmt.Errorf("unknown mutation type %q", text)
	}
	return nil
}
