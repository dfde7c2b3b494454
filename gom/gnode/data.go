// Package gnode decodes the records of a GOM export: a node header plus the
// typed fields of its object.
package gnode

import (
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

type (
	Node struct {
		ID       string `json:"id"`
		FQN      string `json:"fqn"`
		Path     string `json:"path"`
		FileName string `json:"fileName"`
	}
	// Field does not keep its type code; Value.TypeCode() gives it back.
	Field struct {
		ID    string
		Value gvalue.FieldValue
	}
	NodeObjPair struct {
		Node   Node
		Fields []Field
	}
)

const (
	KeyNode = "node"
	KeyObj  = "obj"

	KeyNodeID       = "id"
	KeyNodeFQN      = "fqn"
	KeyNodePath     = "path"
	KeyNodeFileName = "fileName"

	KeyFieldID    = "id"
	KeyFieldType  = "type"
	KeyFieldValue = "value"
)

// Field returns the first field with the given id.
func (r NodeObjPair) Field(id string) (Field, bool) {
	for _, field := range r.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}
