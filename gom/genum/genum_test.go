package genum

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gomJSON = `{"enums": {
		"100": "abilityType",
		"200": "emptyEnum",
		"300": "damageKind",
		"400": "1stBad",
		"500": "missingVariants",
		"700": "ability_type",
		"800": "collidingVariants"
	}}`
	clientGomJSON = `{"enums": {
		"100": ["melee", "ranged", "move"],
		"200": [],
		"300": ["kinetic", "energy"],
		"400": ["a"],
		"600": ["x"],
		"700": ["y"],
		"800": ["fast_hit", "fastHit"]
	}}`
)

func loadTable(t *testing.T) *Table {
	t.Helper()
	table, err := LoadTable(strings.NewReader(gomJSON), strings.NewReader(clientGomJSON))
	require.NoError(t, err)
	return table
}

func TestLoadTable(t *testing.T) {
	table := loadTable(t)

	assert.Equal(
		t,
		[]Enum{
			{ID: 100, Name: "abilityType", Variants: []string{"melee", "ranged", "move"}},
			{ID: 300, Name: "damageKind", Variants: []string{"kinetic", "energy"}},
		},
		table.Enums,
	)
	assert.Equal(t, []uint64{200, 400, 500, 700, 800}, table.Skipped)
}

func TestLoadTable_NamesAcrossEnums(t *testing.T) {
	table, err := LoadTable(
		strings.NewReader(`{"enums": {"1": "foo", "2": "fooBar", "3": "enum_name_by_i_d", "4": "quux"}}`),
		strings.NewReader(`{"enums": {"1": ["barBaz"], "2": ["baz"], "3": ["a"], "4": ["names"]}}`),
	)
	require.NoError(t, err)

	assert.Equal(t, []uint64{2, 3}, table.Skipped)
	assert.Equal(
		t,
		[]Enum{
			{ID: 1, Name: "foo", Variants: []string{"barBaz"}},
			{ID: 4, Name: "quux", Variants: []string{"names"}},
		},
		table.Enums,
	)

	source, err := Generate(table, "")
	require.NoError(t, err)
	typeCheck(t, source)
}

func TestLoadTable_BadJSON(t *testing.T) {
	_, err := LoadTable(strings.NewReader(`{`), strings.NewReader(clientGomJSON))
	assert.ErrorContains(t, err, "GOM.json")

	_, err = LoadTable(strings.NewReader(gomJSON), strings.NewReader(`[]`))
	assert.ErrorContains(t, err, "clientGom.json")
}

func TestTable_Lookup(t *testing.T) {
	table := loadTable(t)

	enum, ok := table.Lookup(300)
	require.True(t, ok)
	assert.Equal(t, "damageKind", enum.Name)

	variant, ok := enum.Variant(1)
	assert.True(t, ok)
	assert.Equal(t, "energy", variant)
	_, ok = enum.Variant(2)
	assert.False(t, ok)

	_, ok = table.Lookup(200)
	assert.False(t, ok)
	_, ok = table.Lookup(999)
	assert.False(t, ok)
}

func TestGenerate(t *testing.T) {
	source, err := Generate(loadTable(t), "")
	require.NoError(t, err)
	text := string(source)

	typeCheck(t, source)

	expectedParts := []string{
		"// Code generated by gom-savior enums. DO NOT EDIT.",
		"package gomenum",
		"type AbilityType uint64",
		"AbilityTypeMelee AbilityType = iota",
		"AbilityTypeRanged\n",
		"AbilityTypeMove\n",
		`"move",`,
		"return abilityTypeNames[r]",
		"type DamageKind uint64",
		"DamageKindKinetic DamageKind = iota",
		`100: "AbilityType",`,
		`300: "DamageKind",`,
	}
	for _, part := range expectedParts {
		assert.Contains(t, text, part)
	}
	assert.NotContains(t, text, "EmptyEnum")
	assert.Less(t, strings.Index(text, "type AbilityType"), strings.Index(text, "type DamageKind"))
}

func TestGenerate_Package(t *testing.T) {
	source, err := Generate(&Table{}, "swtor")
	require.NoError(t, err)
	assert.Contains(t, string(source), "package swtor")
	typeCheck(t, source)
}

func typeCheck(t *testing.T, source []byte) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "enums.go", source, parser.AllErrors)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	_, err = conf.Check(file.Name.Name, fset, []*ast.File{file}, nil)
	require.NoError(t, err, string(source))
}
