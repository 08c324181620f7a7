package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxEntries bounds the transcript kept on disk
const MaxEntries = 500

const (
	transcriptFile = "transcript.txt"
	motdFile       = "motd.txt"
)

// LoadTranscript reads the transcript, oldest entry first
func LoadTranscript(dataDir string) ([]string, error) {
	lines, err := readLines(filepath.Join(dataDir, transcriptFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return lines, nil
}

// SaveTranscript writes the transcript, keeping at most MaxEntries of the
// newest entries
func SaveTranscript(dataDir string, entries []string) error {
	return writeLines(filepath.Join(dataDir, transcriptFile), Trim(entries))
}

// AddEntry appends an entry, dropping the oldest beyond MaxEntries
func AddEntry(entries []string, entry string) []string {
	return Trim(append(entries, entry))
}

// Trim keeps the newest MaxEntries entries
func Trim(entries []string) []string {
	if len(entries) > MaxEntries {
		return entries[len(entries)-MaxEntries:]
	}
	return entries
}

// MOTD is a server's message of the day as last received
type MOTD struct {
	Server string
	Lines  []string
}

// LoadMOTD reads the stored message of the day. The first line holds the
// server name, the rest the MOTD body.
func LoadMOTD(dataDir string) (*MOTD, error) {
	lines, err := readLines(filepath.Join(dataDir, motdFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &MOTD{}, nil
		}
		return nil, err
	}
	if len(lines) == 0 {
		return &MOTD{}, nil
	}
	server, ok := strings.CutPrefix(lines[0], "server ")
	if !ok {
		return &MOTD{Lines: lines}, nil
	}
	return &MOTD{Server: server, Lines: lines[1:]}, nil
}

// SaveMOTD writes the message of the day to file
func SaveMOTD(dataDir string, motd *MOTD) error {
	lines := append([]string{"server " + motd.Server}, motd.Lines...)
	return writeLines(filepath.Join(dataDir, motdFile), lines)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(file, line); err != nil {
			file.Close()
			return err
		}
	}
	return file.Close()
}
