package utils

import (
	"os"
	"path/filepath"
)

// SaveFile writes content to destDir/name, creating destDir when needed.
func SaveFile(content []byte, destDir, name string) (string, error) {
	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, filepath.Base(name))
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", err
	}
	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filePath
}
