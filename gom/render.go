package gom

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/thanhnguyen2187/gom-savior/ds"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
)

// Render writes the records as an indented JSON array. Fields keep their
// export order; debug keeps the type tags. An empty indent gives compact
// output.
func Render(pairs []gnode.NodeObjPair, debug bool, indent string) ([]byte, error) {
	lhms := lo.Map(
		pairs,
		func(pair gnode.NodeObjPair, _ int) *ds.LinkedHashMap[string, any] {
			return gnode.ToLinkedHashMap(pair, debug)
		},
	)
	if indent == "" {
		return json.Marshal(lhms)
	}
	return json.MarshalIndent(lhms, "", indent)
}
