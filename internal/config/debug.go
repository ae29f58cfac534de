package config

import "os"

func IsDebug() bool {
	return os.Getenv("SCRIBE_DEBUG") == "1"
}
