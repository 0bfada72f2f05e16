package utils

import (
	"os"
)

func GetFileSizeByName(filename string) int64 {
	file, err := os.Open(filename)
	if err != nil {
		return 0
	}
	defer func() {
		_ = file.Close()
	}()

	fileStat, err := file.Stat()
	if err != nil {
		return 0
	}

	return fileStat.Size()
}
