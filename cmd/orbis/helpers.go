package main

import (
	"fmt"
	"time"

	"orbis/internal/domain"
)

// parseInstalledAt parses the ISO-8601 timestamps written to orbis-metadata.json
func parseInstalledAt(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseIdentityArg validates a Group:Name argument
func parseIdentityArg(arg string) (string, error) {
	group, name, err := domain.ParseModIdentity(arg)
	if err != nil {
		return "", fmt.Errorf("invalid mod identity %q: expected Group:Name", arg)
	}
	return domain.ModIdentity(group, name), nil
}
