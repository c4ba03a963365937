package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultServerPort = 8855

const defaultServerHost = "127.0.0.1"

func GetServerHost() string {
	host := os.Getenv("SR_SERVER_HOST")
	if host == "" {
		return defaultServerHost
	}
	return host
}

func GetServerPort() int {
	port := os.Getenv("SR_SERVER_PORT")
	if port == "" {
		return defaultServerPort
	}

	intPort, err := strconv.Atoi(port)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse student records server port: %s", port))
	}
	return intPort
}

// GetOllamaBaseURL follows the ollama CLI convention of OLLAMA_HOST, which may
// omit the scheme.
func GetOllamaBaseURL() string {
	host := strings.TrimSpace(os.Getenv("OLLAMA_HOST"))
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host
}

func GetOllamaModel() string {
	return os.Getenv("SR_OLLAMA_MODEL")
}

func GetRedisAddress() string {
	return os.Getenv("SR_REDIS_ADDRESS")
}
