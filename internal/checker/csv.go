package checker

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/netsurvey/netsurvey/internal/errors"
)

const outputFilePerm = 0600

// csvHeader defines the output report columns.
var csvHeader = []string{
	"url",
	"ping_reachable",
	"http_status",
	"latency_ms",
	"redirect_location",
	"redirect_status",
}

// ReadURLs reads the URL list from a CSV file. The first column of
// each row is the URL; blank entries are skipped.
func ReadURLs(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapCheckError(errors.CodeFileNotFound,
				"input file not found", path, err)
		}
		return nil, errors.WrapCheckError(errors.CodeFilePermission,
			"failed to open input file", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows may carry extra columns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapCheckError(errors.CodeValidation,
			"failed to parse input file", path, err)
	}

	urls := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		if u := strings.TrimSpace(record[0]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// WriteResults writes the check results as a CSV report with a header
// row.
func WriteResults(path string, results []Result) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePerm) //nolint:gosec
	if err != nil {
		return errors.WrapCheckError(errors.CodeFilePermission,
			"failed to create output file", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return errors.WrapCheckError(errors.CodeFilePermission,
			"failed to write output header", path, err)
	}
	for i := range results {
		if err := writer.Write(resultRecord(&results[i])); err != nil {
			return errors.WrapCheckError(errors.CodeFilePermission,
				"failed to write output row", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.WrapCheckError(errors.CodeFilePermission,
			"failed to flush output file", path, err)
	}
	return nil
}

func resultRecord(r *Result) []string {
	return []string{
		r.URL,
		formatBool(r.PingOK),
		r.Status,
		strconv.FormatFloat(r.LatencyMS, 'f', 2, 64),
		r.RedirectURL,
		r.RedirectStatus,
	}
}

func formatBool(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
