package genum

import (
	"bytes"
	"go/format"
	"text/template"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	templateEnum struct {
		ID       uint64
		TypeName string
		NamesVar string
		Consts   []string
		Variants []string
	}
	templateData struct {
		Package string
		Enums   []templateEnum
	}
)

const DefaultPackage = "gomenum"

var sourceTemplate = template.Must(template.New("enums").Parse(`// Code generated by gom-savior enums. DO NOT EDIT.

package {{.Package}}
{{if .Enums}}
import "strconv"
{{end}}
// EnumNameByID maps GOM enum ids to the generated type names.
var EnumNameByID = map[uint64]string{
{{- range .Enums}}
	{{.ID}}: {{printf "%q" .TypeName}},
{{- end}}
}
{{range .Enums}}{{$typeName := .TypeName}}
// {{.TypeName}} is GOM enum {{.ID}}.
type {{.TypeName}} uint64

const (
{{- range $i, $c := .Consts}}
	{{$c}}{{if eq $i 0}} {{$typeName}} = iota{{end}}
{{- end}}
)

var {{.NamesVar}} = [...]string{
{{- range .Variants}}
	{{printf "%q" .}},
{{- end}}
}

func (r {{.TypeName}}) String() string {
	if r < {{.TypeName}}(len({{.NamesVar}})) {
		return {{.NamesVar}}[r]
	}
	return "{{.TypeName}}(" + strconv.FormatUint(uint64(r), 10) + ")"
}
{{end}}`))

// Generate renders the table as a gofmt'ed Go file of package pkg.
func Generate(table *Table, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = DefaultPackage
	}
	data := templateData{
		Package: pkg,
		Enums: lo.Map(table.Enums, func(enum Enum, _ int) templateEnum {
			return templateEnum{
				ID:       enum.ID,
				TypeName: TypeName(enum.Name),
				NamesVar: NamesVar(enum.Name),
				Consts: lo.Map(enum.Variants, func(variant string, _ int) string {
					return ConstName(enum.Name, variant)
				}),
				Variants: enum.Variants,
			}
		}),
	}

	buf := bytes.Buffer{}
	if err := sourceTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "genum.Generate error")
	}
	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "genum.Generate error: gofmt")
	}
	return source, nil
}
