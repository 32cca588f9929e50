package saver

import (
	"os"
	"strings"
)

// WriteFeatureNames persists the ordered feature column list, one name per
// line. Downstream consumers read this to reproduce column ordering.
func WriteFeatureNames(path string, names []string) error {
	return os.WriteFile(path, []byte(strings.Join(names, "\n")+"\n"), 0644)
}
