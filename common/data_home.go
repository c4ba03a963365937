package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDirName = "studentrecords"

// GetDataHome returns a directory path for storing the records database. If
// needed, it also creates the directory according to the XDG spec. Can be
// overridden by setting the SR_DATA_HOME environment variable.
func GetDataHome() (string, error) {
	dataDir := os.Getenv("SR_DATA_HOME")
	if dataDir != "" {
		return dataDir, nil
	}

	dataDir = filepath.Join(xdg.DataHome, appDirName)
	err := os.MkdirAll(dataDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}

// GetDatabasePath returns SR_DB_PATH when set, otherwise records.db in the
// data home.
func GetDatabasePath() (string, error) {
	if dbPath := os.Getenv("SR_DB_PATH"); dbPath != "" {
		return dbPath, nil
	}

	dataHome, err := GetDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataHome, "records.db"), nil
}
