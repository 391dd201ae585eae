package dnsettings

import (
	"os"
	"path/filepath"
)

const UserDir = "~/.dirnav"

const configFileName = "config.yaml"

var osUserHomeDir = os.UserHomeDir

func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// DefaultConfigPath is where Load looks when no explicit path is given.
func DefaultConfigPath() (string, error) {
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, configFileName), nil
}
