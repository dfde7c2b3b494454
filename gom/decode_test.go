package gom

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/thanhnguyen2187/gom-savior/gom/gerror"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

func record(index int, fields ...string) string {
	return fmt.Sprintf(
		`{"node": {"id": "%d", "fqn": "abl.test.n%d", "path": "/abl", "fileName": "abl.test.n%d"}, "obj": [%s]}`,
		index, index, index, strings.Join(fields, ","),
	)
}

func export(records ...string) []byte {
	return []byte("[" + strings.Join(records, ",") + "]")
}

func TestIsExportFile(t *testing.T) {
	assert.True(t, IsExportFile([]byte("  \n[]")))
	assert.False(t, IsExportFile([]byte(`{"a": 1}`)))
	assert.False(t, IsExportFile([]byte("")))
}

func TestSplitRecords(t *testing.T) {
	records, err := SplitRecords(export(record(0), record(1)))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = SplitRecords([]byte(`{"node": {}}`))
	assert.ErrorIs(t, err, gerror.ErrShapeMismatch)
}

type DecodeExportTestSuite struct {
	suite.Suite
	bs []byte
}

func (s *DecodeExportTestSuite) SetupTest() {
	records := make([]string, 0)
	for i := 0; i < 50; i++ {
		records = append(records, record(i, fmt.Sprintf(`{"id": "n", "type": 2, "value": %d}`, -i)))
	}
	s.bs = export(records...)
}

func (s *DecodeExportTestSuite) TestKeepsOrder() {
	for _, workers := range []int{0, 1, 3, 16} {
		pairs, err := DecodeExport(s.bs, Options{Workers: workers})
		s.Require().NoError(err)
		s.Require().Len(pairs, 50)
		for i, pair := range pairs {
			s.Equal(fmt.Sprint(i), pair.Node.ID)
			s.Equal(gvalue.Integer(-i), pair.Fields[0].Value)
		}
	}
}

func (s *DecodeExportTestSuite) TestEachKeepsOrder() {
	results, err := DecodeExportEach(s.bs, Options{Workers: 4})
	s.Require().NoError(err)
	s.Require().Len(results, 50)
	for i, result := range results {
		s.Equal(i, result.Index)
		s.NoError(result.Err)
		s.Equal(fmt.Sprint(i), result.Pair.Node.ID)
	}
}

func TestDecodeExportTestSuite(t *testing.T) {
	suite.Run(t, new(DecodeExportTestSuite))
}

func TestDecodeExport_BadRecord(t *testing.T) {
	bs := export(
		record(0, `{"id": "a", "type": 1, "value": 1}`),
		record(1, `{"id": "a", "type": 1, "value": -1}`),
	)
	_, err := DecodeExport(bs, Options{Workers: 2})
	assert.ErrorIs(t, err, gerror.ErrNegativeIdentifier)
}

func TestDecodeExportEach_Collect(t *testing.T) {
	bs := export(
		record(0, `{"id": "a", "type": 1, "value": 1}`),
		record(1, `{"id": "a", "type": 1}`),
		record(2, `{"id": "a", "type": 6, "value": "x"}`),
	)
	results, err := DecodeExportEach(bs, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, gerror.ErrMissingKey)
	assert.Contains(t, results[1].Err.Error(), "record 1")

	kept, err := KeepValid(results, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, kept[1].Index)
	assert.NoError(t, results[2].Err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pairs, err := Collect(results, true, logger)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "0", pairs[0].Node.ID)
	assert.Equal(t, "2", pairs[1].Node.ID)

	_, err = Collect(results, false, logger)
	assert.ErrorIs(t, err, gerror.ErrMissingKey)
}

func TestRender(t *testing.T) {
	pairs, err := DecodeExport(
		export(record(7, `{"id": "b", "type": 3, "value": true}`, `{"id": "a", "type": 2, "value": -3}`)),
		Options{},
	)
	require.NoError(t, err)

	bs, err := Render(pairs, false, "")
	require.NoError(t, err)
	assert.Equal(
		t,
		`[{"node":{"id":"7","fqn":"abl.test.n7","path":"/abl","fileName":"abl.test.n7"},"fields":{"b":true,"a":-3}}]`,
		string(bs),
	)

	bs, err = Render(pairs, true, "  ")
	require.NoError(t, err)
	rendered := make([]map[string]json.RawMessage, 0)
	require.NoError(t, json.Unmarshal(bs, &rendered))
	assert.JSONEq(t, `{"b":{"type":3,"value":true},"a":{"type":2,"value":-3}}`, string(rendered[0]["fields"]))
}
