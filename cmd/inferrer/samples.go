package main

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// emptyWord stands for the empty string in sample files.
const emptyWord = "ε"

// sampleFile is the yaml layout of --samples.
type sampleFile struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

func readSampleFile(path string) (pos, neg []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var s sampleFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(s.Positive), normalize(s.Negative), nil
}

// readWordList reads one example per line. An empty line or ε is the empty string.
func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return normalize(out), nil
}

func normalize(ws []string) []string {
	for i, w := range ws {
		if w == emptyWord {
			ws[i] = ""
		}
	}
	return ws
}
