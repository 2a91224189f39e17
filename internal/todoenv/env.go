package todoenv

import (
	"os"
	"strings"
)

// DataFileEnvVar is the environment variable that overrides the data file.
const DataFileEnvVar = "SOLIDTODO_DATA"

// DataFile returns the data file named by the environment, or "" if unset.
func DataFile() string {
	return strings.TrimSpace(os.Getenv(DataFileEnvVar))
}
