package analyze

import (
	"bufio"
	"os"
	"strings"

	"github.com/netsurvey/netsurvey/internal/errors"
)

// ReadTargets reads scan targets from a file, one per line. Blank
// lines and comment lines starting with '#' are skipped.
func ReadTargets(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // operator-supplied targets path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapScanError(errors.CodeFileNotFound, "targets file not found", err)
		}
		return nil, errors.WrapScanError(errors.CodeFilePermission, "failed to open targets file", err)
	}
	defer func() { _ = file.Close() }()

	var targets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapScanError(errors.CodeFilePermission, "failed to read targets file", err)
	}

	return targets, nil
}
