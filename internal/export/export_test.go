package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/recruitbase/recruitbase-api/internal/models"
)

func TestStreamCSVHeaderPlusNRows(t *testing.T) {
	var buf bytes.Buffer
	rows := SliceRows([][]string{
		{"1", "Jane", "MA"},
		{"2", "Omar", "ES"},
	})

	err := Stream(context.Background(), &buf, FormatCSV, []string{"ID", "Name", "Country"}, rows)
	require.NoError(t, err)

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3, "one header row plus N data rows")
	assert.Equal(t, []string{"ID", "Name", "Country"}, parsed[0])
	assert.Equal(t, []string{"1", "Jane", "MA"}, parsed[1])
	assert.Equal(t, []string{"2", "Omar", "ES"}, parsed[2])
}

func TestStreamCSVRowErrorAborts(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("cursor lost")
	calls := 0
	rows := RowFunc(func() ([]string, bool, error) {
		calls++
		if calls > 2 {
			return nil, false, boom
		}
		return []string{"x"}, false, nil
	})

	err := Stream(context.Background(), &buf, FormatCSV, []string{"Col"}, rows)
	assert.ErrorIs(t, err, boom)
}

func TestStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pulled := 0
	rows := RowFunc(func() ([]string, bool, error) {
		pulled++
		if pulled == 3 {
			cancel() // client disconnects mid-stream
		}
		return []string{"x"}, false, nil
	})

	err := Stream(ctx, &bytes.Buffer{}, FormatCSV, []string{"Col"}, rows)
	require.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, pulled, 4, "iterator must be released promptly, not drained")
}

func TestStreamXLSX(t *testing.T) {
	var buf bytes.Buffer
	rows := SliceRows([][]string{
		{"1", "Jane"},
		{"2", "Omar"},
	})

	err := Stream(context.Background(), &buf, FormatXLSX, []string{"ID", "Name"}, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ID", "Name"}, got[0])
	assert.Equal(t, []string{"2", "Omar"}, got[2])
}

func TestApplicationRowSentinelFill(t *testing.T) {
	a := models.Application{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Status:   models.StatusPending,
		Stage:    models.StageApplied,
		// no phone, no linkedin, no source, no country/city, zero applied_at
	}

	row := ApplicationRow(a)
	require.Len(t, row, len(ApplicationHeaders), "every declared column is populated")
	cells := map[string]string{}
	for i, h := range ApplicationHeaders {
		cells[h] = row[i]
	}
	assert.Equal(t, "Jane Doe", cells["Full Name"])
	assert.Equal(t, Sentinel, cells["LinkedIn"])
	assert.Equal(t, Sentinel, cells["Phone Number"])
	assert.Equal(t, Sentinel, cells["Applied At"])
	assert.Equal(t, "Pending", cells["Status"], "enum rendered via label")
	assert.Equal(t, "Applied", cells["Stage"])
}

func TestApplicationRowUnknownEnumFallsBackRaw(t *testing.T) {
	row := ApplicationRow(models.Application{Status: "limbo", Stage: "warp"})
	cells := map[string]string{}
	for i, h := range ApplicationHeaders {
		cells[h] = row[i]
	}
	assert.Equal(t, "limbo", cells["Status"])
	assert.Equal(t, "warp", cells["Stage"])
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, ParseFormat("xlsx"))
	assert.Equal(t, FormatCSV, ParseFormat("csv"))
	assert.Equal(t, FormatCSV, ParseFormat(""))
	assert.Equal(t, FormatCSV, ParseFormat("pdf"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.True(t, strings.Contains(FormatXLSX.ContentType(), "spreadsheetml"))
}
