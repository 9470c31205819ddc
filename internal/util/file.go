package util

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// OutputPrefix is prepended to every generated screenshot file name.
const OutputPrefix = "processed_"

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether a local file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// IsRemote reports whether input should be fetched over HTTP.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// BaseName returns the file name of a local path or of a URL's path.
func BaseName(input string) string {
	if IsRemote(input) {
		if u, err := url.Parse(input); err == nil {
			if b := path.Base(u.Path); b != "" && b != "/" && b != "." {
				return b
			}
			return u.Host
		}
	}
	return filepath.Base(input)
}

// OutputName is processed_<stem>.png for an input like "shots/print1.jpg".
func OutputName(input string) string {
	base := BaseName(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return OutputPrefix + stem + ".png"
}
