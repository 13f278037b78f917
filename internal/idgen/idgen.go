// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the two entity kinds.
const (
	SeasonPrefix = "sn-"
	TaskPrefix   = "tk-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewSeasonID returns a new unique season ID.
func NewSeasonID() (string, error) {
	return generate(SeasonPrefix)
}

// NewTaskID returns a new unique task ID.
func NewTaskID() (string, error) {
	return generate(TaskPrefix)
}

func generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
