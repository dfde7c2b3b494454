// Package genum turns the enum metadata of a GOM export into Go source.
//
// GOM.json names every enum by id; clientGom.json lists the variants of each
// id in value order. An EnumRef value is an index into those variants.
package genum

import (
	"encoding/json"
	"go/token"
	"io"
	"sort"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	Enum struct {
		ID       uint64
		Name     string
		Variants []string
	}
	// Table holds the usable enums sorted by id.
	Table struct {
		Enums []Enum
		// Skipped lists the ids that had a name but could not be generated.
		Skipped []uint64
	}

	gomFile struct {
		Enums map[uint64]string `json:"enums"`
	}
	clientGomFile struct {
		Enums map[uint64][]string `json:"enums"`
	}
)

// reservedNames are the package-level identifiers every generated file
// declares or imports.
var reservedNames = []string{"EnumNameByID", "strconv"}

// LoadTable joins the two metadata files on enum id. An enum is skipped when
// it has no variants, or when its name or one of its variants does not give a
// Go identifier, or when one of its generated names collides with a name
// already taken by itself or by an enum with a lower id.
func LoadTable(gomJSON io.Reader, clientGomJSON io.Reader) (*Table, error) {
	gom := gomFile{}
	if err := json.NewDecoder(gomJSON).Decode(&gom); err != nil {
		return nil, errors.Wrap(err, "genum.LoadTable error: GOM.json")
	}
	clientGom := clientGomFile{}
	if err := json.NewDecoder(clientGomJSON).Decode(&clientGom); err != nil {
		return nil, errors.Wrap(err, "genum.LoadTable error: clientGom.json")
	}

	ids := lo.Keys(gom.Enums)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	table := Table{
		Enums:   make([]Enum, 0, len(ids)),
		Skipped: make([]uint64, 0),
	}
	taken := lo.SliceToMap(reservedNames, func(name string) (string, bool) {
		return name, true
	})
	for _, id := range ids {
		enum := Enum{
			ID:       id,
			Name:     gom.Enums[id],
			Variants: clientGom.Enums[id],
		}
		names, ok := declaredNames(enum)
		if !ok || lo.SomeBy(names, func(name string) bool { return taken[name] }) {
			table.Skipped = append(table.Skipped, id)
			continue
		}
		for _, name := range names {
			taken[name] = true
		}
		table.Enums = append(table.Enums, enum)
	}

	return &table, nil
}

// declaredNames lists the package-level identifiers the enum would add to the
// generated file. It reports false when one of them is not a valid identifier
// or when two of them are the same.
func declaredNames(enum Enum) ([]string, bool) {
	if len(enum.Variants) == 0 || !isIdentifier(TypeName(enum.Name)) {
		return nil, false
	}
	names := []string{TypeName(enum.Name), NamesVar(enum.Name)}
	for _, variant := range enum.Variants {
		if variant == "" || !isIdentifier(strcase.ToCamel(variant)) {
			return nil, false
		}
		names = append(names, ConstName(enum.Name, variant))
	}
	if len(lo.Uniq(names)) != len(names) {
		return nil, false
	}
	return names, true
}

func isIdentifier(name string) bool {
	return token.IsIdentifier(name) && token.IsExported(name)
}

func TypeName(name string) string {
	return strcase.ToCamel(name)
}

// NamesVar is the unexported array holding the variant names of an enum.
func NamesVar(name string) string {
	return strcase.ToLowerCamel(name) + "Names"
}

func ConstName(enumName string, variant string) string {
	return TypeName(enumName) + strcase.ToCamel(variant)
}

func (r *Table) Lookup(id uint64) (Enum, bool) {
	i := sort.Search(len(r.Enums), func(i int) bool { return r.Enums[i].ID >= id })
	if i < len(r.Enums) && r.Enums[i].ID == id {
		return r.Enums[i], true
	}
	return Enum{}, false
}

// Variant names the value an EnumRef index stands for.
func (r Enum) Variant(index uint64) (string, bool) {
	if index >= uint64(len(r.Variants)) {
		return "", false
	}
	return r.Variants[index], true
}
