package discord

import (
	"fmt"
	"strconv"
	"strings"
)

// markerSuffix turns an ASCII digit into its keycap emoji:
// variation selector-16 followed by combining enclosing keycap.
const markerSuffix = "️⃣"

// MaxChoices is bounded by the single-digit keycap markers 1️⃣..9️⃣.
const MaxChoices = 9

// MarkerForChoice returns the keycap emoji for a 1-based choice position.
func MarkerForChoice(position int) (string, error) {
	if position < 1 || position > MaxChoices {
		return "", fmt.Errorf("no marker for choice position %d", position)
	}
	return strconv.Itoa(position) + markerSuffix, nil
}

// ChoiceForMarker decodes a reaction emoji back into its 1-based choice
// position. The second return value is false for anything that is not a
// poll marker.
func ChoiceForMarker(emoji string) (int, bool) {
	if !strings.HasSuffix(emoji, markerSuffix) {
		return 0, false
	}

	position, err := strconv.Atoi(strings.TrimSuffix(emoji, markerSuffix))
	if err != nil || position < 1 || position > MaxChoices {
		return 0, false
	}

	return position, true
}
