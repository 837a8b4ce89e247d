package analyze

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/netsurvey/netsurvey/internal/errors"
)

const (
	reportDirPerm  = 0750
	reportFilePerm = 0600
)

// sanitizeTarget makes a target string safe for use in a filename.
// CIDR targets contain slashes, which would otherwise become path
// separators.
func sanitizeTarget(target string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_")
	return replacer.Replace(target)
}

// ReportFileName returns the report filename for a target.
func ReportFileName(target string) string {
	return "report_" + sanitizeTarget(target) + ".md"
}

// WriteReport writes a generated report for a target into dir and
// returns the full path.
func WriteReport(dir, target, content string) (string, error) {
	if err := os.MkdirAll(dir, reportDirPerm); err != nil {
		return "", errors.WrapScanErrorWithTarget(errors.CodeDirectoryCreate,
			"failed to create report directory", target, err)
	}

	path := filepath.Join(dir, ReportFileName(target))
	if err := os.WriteFile(path, []byte(content), reportFilePerm); err != nil {
		return "", errors.WrapScanErrorWithTarget(errors.CodeFilePermission,
			"failed to write report", target, err)
	}

	return path, nil
}
