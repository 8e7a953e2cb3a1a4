package utils

import (
	"crypto/md5"
	"fmt"
	"os"
	"strings"
)

func Md5(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}

func Exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// ChunkPath maps a source path to its compiled chunk path, demo.mc to
// demo.mca.
func ChunkPath(source string) string {
	return source + "a"
}

// SourcePath maps a chunk path back to the source it came from.
func SourcePath(chunk string) string {
	return strings.TrimSuffix(chunk, "a")
}
