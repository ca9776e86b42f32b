package store

import (
	"errors"

	"github.com/rcliao/hunter-protocol/internal/codec"
	"github.com/rcliao/hunter-protocol/internal/model"
	"github.com/rcliao/hunter-protocol/internal/progression"
)

var (
	// ErrNoHome is returned when no home directory is configured.
	ErrNoHome = errors.New("home directory not set")
	// ErrMkdir is returned when the save directory cannot be created.
	ErrMkdir = errors.New("could not create save directory")
	// ErrOpen is returned when the save file cannot be opened or removed.
	ErrOpen = errors.New("could not open file")
	// ErrRead is returned for I/O failures and short files while reading.
	ErrRead = errors.New("read error")
	// ErrWrite is returned when the save file cannot be written in full.
	ErrWrite = errors.New("write error")
)

var descriptions = []struct {
	err  error
	text string
}{
	{model.ErrInvalidArgument, "Invalid argument"},
	{ErrNoHome, "HOME environment variable not set"},
	{ErrMkdir, "Could not create save directory"},
	{ErrOpen, "Could not open file"},
	{ErrRead, "Read error"},
	{ErrWrite, "Write error"},
	{codec.ErrBadMagic, "Invalid file format (bad magic)"},
	{codec.ErrVersionMismatch, "Incompatible save version"},
	{codec.ErrChecksumMismatch, "File corrupted (checksum mismatch)"},
	{codec.ErrTooManyQuests, "Too many quests in save file"},
	{codec.ErrTruncated, "Save file truncated"},
	{codec.ErrInvalidRank, "Invalid hunter rank in save file"},
	{model.ErrNotFound, "Quest not found"},
	{model.ErrQuestListFull, "Quest list full"},
	{model.ErrDuplicateQuest, "Duplicate quest id"},
	{progression.ErrIllegalTransition, "Quest is not in the right state"},
	{progression.ErrRequirementsNotMet, "Quest requirements not met"},
}

// Describe returns a short human-readable message for err.
func Describe(err error) string {
	if err == nil {
		return "Success"
	}
	for _, d := range descriptions {
		if errors.Is(err, d.err) {
			return d.text
		}
	}
	return "Unknown error"
}
