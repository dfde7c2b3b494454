package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders t for previews and messages. A value that cannot be
// marshalled renders as the marshalling error instead.
func DumpJSON[T any](t T) string {
	bs, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("<DumpJSON error: %s>", err)
	}
	return string(bs)
}
