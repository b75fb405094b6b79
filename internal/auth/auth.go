package auth

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const serviceName = "vaani"

const (
	SourceEnv      = "Environment Variable"
	SourceKeychain = "Keychain"
)

// Service describes one credential: its keychain account and environment variable.
type Service struct {
	Name    string
	Label   string
	Account string
	EnvVar  string
}

var services = map[string]Service{
	"tavily": {Name: "tavily", Label: "Tavily", Account: "tavily-api-key", EnvVar: "TAVILY_API_KEY"},
	"groq":   {Name: "groq", Label: "Groq", Account: "groq-api-key", EnvVar: "GROQ_API_KEY"},
	"gemini": {Name: "gemini", Label: "Gemini", Account: "gemini-api-key", EnvVar: "GEMINI_API_KEY"},
	"sarvam": {Name: "sarvam", Label: "Sarvam", Account: "sarvam-api-key", EnvVar: "SARVAM_API_KEY"},
}

// Lookup returns the service definition for name.
func Lookup(name string) (Service, bool) {
	svc, ok := services[strings.ToLower(strings.TrimSpace(name))]
	return svc, ok
}

// Services returns all known service names, sorted.
func Services() []string {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKey retrieves the API key for a service, checking the environment first and
// the OS keychain second. It returns the key and where it came from.
func GetKey(service string) (string, string) {
	if key, ok := GetEnvKey(service); ok {
		return key, SourceEnv
	}
	svc, ok := Lookup(service)
	if !ok {
		return "", ""
	}
	key, err := keyring.Get(serviceName, svc.Account)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), SourceKeychain
	}
	return "", ""
}

// GetEnvKey retrieves the key from environment variables only.
func GetEnvKey(service string) (string, bool) {
	svc, ok := Lookup(service)
	if !ok {
		return "", false
	}
	key := strings.TrimSpace(os.Getenv(svc.EnvVar))
	if key == "" {
		return "", false
	}
	return key, true
}

// SaveKey saves the key for a service to the OS keychain.
func SaveKey(service, key string) error {
	svc, ok := Lookup(service)
	if !ok {
		return fmt.Errorf("unknown service: %s", service)
	}
	return keyring.Set(serviceName, svc.Account, strings.TrimSpace(key))
}

// DeleteKey removes the key for a service from the OS keychain.
func DeleteKey(service string) error {
	svc, ok := Lookup(service)
	if !ok {
		return fmt.Errorf("unknown service: %s", service)
	}
	return keyring.Delete(serviceName, svc.Account)
}

// GetStatus returns whether a key exists for a service in the keychain.
func GetStatus(service string) bool {
	svc, ok := Lookup(service)
	if !ok {
		return false
	}
	key, err := keyring.Get(serviceName, svc.Account)
	if err != nil || key == "" {
		return false
	}
	return true
}

// PromptForAPIKey securely prompts the user for their API key.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}
