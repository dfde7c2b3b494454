package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom"
	"github.com/thanhnguyen2187/gom-savior/gom/genum"
	"github.com/thanhnguyen2187/gom-savior/gom/gfilter"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
	"github.com/thanhnguyen2187/gom-savior/store"
	"github.com/thanhnguyen2187/gom-savior/ui"
)

type (
	DecodeCmd struct {
		From        string `arg:"required" help:"path to the export" placeholder:"abl.json"`
		To          string `arg:"required" help:"path to the destination file" placeholder:"out.json"`
		Force       bool   `help:"overwrite the destination file"`
		Debug       bool   `help:"keep the type code of every field"`
		Where       string `help:"only keep records matching this expression" placeholder:"EXPR"`
		SkipInvalid bool   `arg:"--skip-invalid" help:"skip records that fail to decode"`
	}
	SplitCmd struct {
		From        string `arg:"required" help:"path to the export" placeholder:"abl.json"`
		To          string `arg:"required" help:"destination directory" placeholder:"DIR"`
		Where       string `help:"only keep records matching this expression" placeholder:"EXPR"`
		SkipInvalid bool   `arg:"--skip-invalid" help:"skip records that fail to decode"`
	}
	EnumsCmd struct {
		GOM       string `arg:"--gom,required" help:"path to GOM.json" placeholder:"GOM.json"`
		ClientGOM string `arg:"--client-gom,required" help:"path to clientGom.json" placeholder:"clientGom.json"`
		To        string `arg:"required" help:"path to the generated Go file" placeholder:"enums.go"`
		Package   string `help:"package of the generated file" default:"gomenum"`
		Force     bool   `help:"overwrite the destination file"`
	}
	IndexCmd struct {
		From        string  `arg:"required" help:"path to the export" placeholder:"abl.json"`
		DBURL       *string `arg:"--db-url,env:GOM_DB_URL" help:"sqlite:// or postgres:// URL" placeholder:"URL"`
		SkipInvalid bool    `arg:"--skip-invalid" help:"skip records that fail to decode"`
	}
	BrowseCmd struct {
		From string `arg:"required" help:"path to the export" placeholder:"abl.json"`
	}
)

type export struct {
	records []json.RawMessage
	// kept holds the decoded records that passed skip_invalid and the
	// filter; Result.Index points into records.
	kept []gom.Result
}

func (r export) pairs() []gnode.NodeObjPair {
	return gom.Pairs(r.kept)
}

// readExport decodes the file at path, honoring skip_invalid and the
// optional filter expression.
func readExport(path string, where string, env Env) (*export, error) {
	if !CheckExistence(path) {
		return nil, errors.Errorf("source file `%s` does not exist", path)
	}
	filter, err := gfilter.Compile(where)
	if err != nil {
		return nil, err
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading `%s`", path)
	}
	if !gom.IsExportFile(bs) {
		return nil, errors.Errorf("`%s` is not a GOM export: expected a JSON array of records", path)
	}
	records, err := gom.SplitRecords(bs)
	if err != nil {
		return nil, err
	}

	env.Logger.Debug("decoding export", "path", path, "records", len(records), "workers", env.Config.Workers)
	results := gom.DecodeRecordsEach(records, gom.Options{Workers: env.Config.Workers})
	valid, err := gom.KeepValid(results, env.Config.SkipInvalid, env.Logger)
	if err != nil {
		return nil, err
	}
	if len(valid) < len(results) {
		env.Logger.Warn("records skipped", "count", len(results)-len(valid))
	}

	kept := make([]gom.Result, 0, len(valid))
	for _, result := range valid {
		matched, err := filter.Match(result.Pair)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, result)
		}
	}
	return &export{
		records: records,
		kept:    kept,
	}, nil
}

func checkDestination(path string, force bool) error {
	if CheckExistence(path) && !force {
		return errors.Errorf("destination file `%s` exists; type the command again with --force to overwrite it", path)
	}
	return nil
}

func (r *DecodeCmd) Run(env Env) (string, error) {
	if err := checkDestination(r.To, r.Force); err != nil {
		return "", err
	}
	exp, err := readExport(r.From, r.Where, env)
	if err != nil {
		return "", err
	}
	pairs := exp.pairs()

	bs, err := gom.Render(pairs, r.Debug, env.Config.Indent)
	if err != nil {
		return "", errors.Wrap(err, "rendering JSON")
	}
	if err := os.WriteFile(r.To, bs, 0644); err != nil {
		return "", errors.Wrapf(err, "writing `%s`", r.To)
	}
	return fmt.Sprintf("Done decoding %d records. Please check your result file at: %s", len(pairs), r.To), nil
}

func (r *SplitCmd) Run(env Env) (string, error) {
	exp, err := readExport(r.From, r.Where, env)
	if err != nil {
		return "", err
	}

	for _, result := range exp.kept {
		obj, err := gnode.RawObj(exp.records[result.Index])
		if err != nil {
			return "", errors.Wrapf(err, "record %d", result.Index)
		}
		compacted := bytes.Buffer{}
		if err := json.Compact(&compacted, obj); err != nil {
			return "", errors.Wrapf(err, "record %d", result.Index)
		}

		path := filepath.Join(r.To, gnode.FQNPath(result.Pair.Node.FQN))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", errors.Wrapf(err, "creating the directory of `%s`", path)
		}
		if err := os.WriteFile(path, compacted.Bytes(), 0644); err != nil {
			return "", errors.Wrapf(err, "writing `%s`", path)
		}
		env.Logger.Debug("wrote record", "fqn", result.Pair.Node.FQN, "path", path)
	}
	return fmt.Sprintf("Done splitting %d records into: %s", len(exp.kept), r.To), nil
}

func (r *EnumsCmd) Run(env Env) (string, error) {
	if err := checkDestination(r.To, r.Force); err != nil {
		return "", err
	}
	gomFile, err := os.Open(r.GOM)
	if err != nil {
		return "", errors.Wrapf(err, "opening `%s`", r.GOM)
	}
	defer gomFile.Close()
	clientGOMFile, err := os.Open(r.ClientGOM)
	if err != nil {
		return "", errors.Wrapf(err, "opening `%s`", r.ClientGOM)
	}
	defer clientGOMFile.Close()

	table, err := genum.LoadTable(gomFile, clientGOMFile)
	if err != nil {
		return "", err
	}
	if len(table.Skipped) > 0 {
		env.Logger.Info("enums skipped", "count", len(table.Skipped), "ids", table.Skipped)
	}
	source, err := genum.Generate(table, r.Package)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(r.To, source, 0644); err != nil {
		return "", errors.Wrapf(err, "writing `%s`", r.To)
	}
	return fmt.Sprintf("Done generating %d enums into: %s", len(table.Enums), r.To), nil
}

func (r *IndexCmd) Run(env Env) (string, error) {
	exp, err := readExport(r.From, "", env)
	if err != nil {
		return "", err
	}

	s, err := store.Connect(env.Config.DBURL)
	if err != nil {
		return "", err
	}
	defer s.Close()

	importID, err := s.SaveImport(r.From, exp.pairs())
	if err != nil {
		return "", err
	}
	count, err := s.CountNodes(importID)
	if err != nil {
		return "", err
	}
	env.Logger.Debug("saved import", "import_id", importID, "db_url", env.Config.DBURL)
	return fmt.Sprintf("Done indexing %d records as import %s", count, importID), nil
}

func (r *BrowseCmd) Run(env Env) (string, error) {
	exp, err := readExport(r.From, "", env)
	if err != nil {
		return "", err
	}
	return "", ui.Start(filepath.Base(r.From), exp.pairs())
}
