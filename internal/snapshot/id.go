package snapshot

import (
	"fmt"
	"math/rand"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/utils/sanitize"
)

var ErrInvalidID = errors.Sentinel("invalid snapshot identifier")

var adjectives = []string{
	"amber", "ancient", "autumn", "bold", "brave", "bright", "calm", "clever",
	"cosmic", "crimson", "curious", "dapper", "eager", "early", "fancy", "fuzzy",
	"gentle", "gilded", "golden", "happy", "hidden", "humble", "icy", "jolly",
	"keen", "lively", "lucky", "mellow", "misty", "nimble", "noble", "patient",
	"polished", "proud", "quiet", "rapid", "rustic", "shiny", "silent", "silver",
	"sleepy", "snowy", "solid", "steady", "sunny", "swift", "tidy", "velvet",
	"vivid", "wandering", "warm", "wild", "wise", "witty", "young", "zesty",
}

var nouns = []string{
	"acorn", "badger", "beacon", "birch", "bison", "breeze", "brook", "canyon",
	"cedar", "comet", "coral", "crane", "dune", "eagle", "ember", "falcon",
	"fern", "fjord", "fox", "glacier", "harbor", "hawk", "heron", "island",
	"lagoon", "lantern", "lynx", "maple", "meadow", "meteor", "moose", "nebula",
	"oak", "orchid", "otter", "owl", "panda", "pebble", "pine", "prairie",
	"quartz", "raven", "reef", "river", "robin", "sparrow", "spruce", "summit",
	"thistle", "tiger", "tundra", "valley", "walrus", "willow", "wren", "zephyr",
}

// ValidateID checks that id can be used as a snapshot identifier: lowercase
// letters, digits and single dashes, which keeps it safe as a ref component.
func ValidateID(id string) error {
	if id == "" {
		return errors.WrapIf(ErrInvalidID, "identifier must not be empty")
	}
	if sanitize.ID(id) != id {
		return errors.WrapIff(ErrInvalidID,
			"%q (use lowercase letters, digits and dashes, e.g. %q)", id, sanitize.ID(id))
	}
	return nil
}

// GenerateID returns a random "adjective-noun" identifier for which taken
// returns false. If the random names keep colliding, a numeric suffix is
// added.
func GenerateID(taken func(id string) bool) string {
	return generateID(rand.Intn, taken)
}

func generateID(intn func(n int) int, taken func(id string) bool) string {
	const attempts = 32
	var id string
	for i := 0; i < attempts; i++ {
		id = adjectives[intn(len(adjectives))] + "-" + nouns[intn(len(nouns))]
		if !taken(id) {
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
