package files

import (
	"fmt"
	"os"
)

// CheckExecutable reports whether path is a regular file with any execute bit set.
func CheckExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%s is not executable (mode %s)", path, info.Mode().Perm())
	}
	return nil
}
