package input

import (
	"os"
	"time"
)

func (osFileMeta) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileMeta) ModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
