package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oukeidos/vaani/internal/auth"
	"github.com/oukeidos/vaani/internal/providers"
	"github.com/oukeidos/vaani/internal/services"
)

const sourceSession = "Session"

// sessionKeySource prefers keys entered for this session only, then fallback.
func sessionKeySource(session map[string]string, fallback services.KeySource) services.KeySource {
	return func(service string) (string, string) {
		if key := strings.TrimSpace(session[service]); key != "" {
			return key, sourceSession
		}
		return fallback(service)
	}
}

// requiredServices lists the credentials a run with the given summarizer needs.
func requiredServices(provider string) []string {
	summarizer := provider
	if p, ok := providers.Get(provider); ok {
		summarizer = p.KeyService
	}
	return []string{"tavily", summarizer, "sarvam"}
}

// missingKeys returns the required services that keys cannot resolve.
func missingKeys(provider string, keys services.KeySource) []string {
	var missing []string
	for _, svc := range requiredServices(provider) {
		if key, _ := keys(svc); key == "" {
			missing = append(missing, svc)
		}
	}
	return missing
}

type keySaveResult struct {
	Saved []string
}

// saveKeysToKeychain saves every non-blank entry, continuing past failures.
func saveKeysToKeychain(entries map[string]string, saveFn func(service, key string) error) (keySaveResult, error) {
	result := keySaveResult{}
	var errs []error
	for _, svc := range auth.Services() {
		key := strings.TrimSpace(entries[svc])
		if key == "" {
			continue
		}
		if err := saveFn(svc, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s key: %w", serviceLabel(svc), err))
			continue
		}
		result.Saved = append(result.Saved, svc)
	}
	return result, errors.Join(errs...)
}

// resetKeysInKeychain deletes every known key, continuing past failures.
func resetKeysInKeychain(deleteFn func(service string) error) error {
	var errs []error
	for _, svc := range auth.Services() {
		if err := deleteFn(svc); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s key: %w", serviceLabel(svc), err))
		}
	}
	return errors.Join(errs...)
}

func serviceLabel(name string) string {
	if svc, ok := auth.Lookup(name); ok {
		return svc.Label
	}
	return name
}
