package outputproviders

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GetFullPath constructs the full file path from filename and output path
func GetFullPath(filename string, outputPath string) string {
	if outputPath == "" {
		return filename
	}
	return outputPath + string(os.PathSeparator) + filename
}

// DefaultFileName builds "<prefix>-<unix-timestamp>.<ext>" for results that
// did not carry an explicit filename.
func DefaultFileName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, strconv.FormatInt(time.Now().Unix(), 10), ext)
}

// EnsureDir creates the directory for a full path if it does not exist yet.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, os.ModePerm)
	}
	return nil
}
