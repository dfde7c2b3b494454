package gnode

import (
	"path/filepath"
	"strings"
)

const ExtJSON = ".json"

// FQNPath maps a fully qualified name to the relative file a split record is
// written to: `abl.npc.attack` becomes `abl/npc/attack.json`.
func FQNPath(fqn string) string {
	parts := strings.Split(fqn, ".")
	return filepath.Join(parts...) + ExtJSON
}
