// Package suricata adapts the Suricata IDS: config grammar scanning, config
// self-test and live capture.
package suricata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"examguard/internal/core/domain"
)

const (
	keyLogDir   = "default-log-dir:"
	keyFastLog  = "- fast:"
	keyEnabled  = "enabled:"
	keyFilename = "filename:"
	listItem    = "- "
)

// scanner is the per-file state machine.
type scanner struct {
	res       domain.ConfigScan
	inSection bool
	enabled   bool
	done      bool
}

// ScanConfig reads a config line by line and extracts the log directory and
// the fast-log settings. The YAML is not parsed: keys are matched on trimmed
// lines regardless of indentation, which is enough for the stock layout and
// tolerant of files a strict parser would refuse.
func ScanConfig(r io.Reader) (domain.ConfigScan, error) {
	var s scanner

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		s.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return domain.ConfigScan{}, fmt.Errorf("scan config: %w", err)
	}

	s.res.FastLogEnabled = s.enabled && s.res.Target.Filename != ""
	return s.res, nil
}

// ScanFile opens path and scans it.
func ScanFile(path string) (domain.ConfigScan, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ConfigScan{}, err
	}
	defer f.Close()

	return ScanConfig(f)
}

func (s *scanner) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	if s.res.Target.Dir == "" && strings.HasPrefix(line, keyLogDir) {
		s.res.Target.Dir = value(line, keyLogDir)
		return
	}

	// once a filename is known only the log directory is still of interest
	if s.done {
		return
	}

	if strings.HasPrefix(line, keyFastLog) {
		s.inSection = true
		s.enabled = false
		s.res.SectionFound = true
		return
	}

	if !s.inSection {
		return
	}

	switch {
	case strings.HasPrefix(line, keyEnabled):
		s.enabled = value(line, keyEnabled) == "yes"
		if !s.enabled {
			s.inSection = false
		}
	case s.enabled && strings.HasPrefix(line, keyFilename):
		s.res.Target.Filename = value(line, keyFilename)
		s.inSection = false
		s.done = true
	case strings.HasPrefix(line, listItem):
		s.inSection = false
		s.enabled = false
	}
}

// value returns the text after key with inline comments and quotes removed.
func value(line, key string) string {
	v := strings.TrimSpace(strings.TrimPrefix(line, key))
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			v = v[1 : len(v)-1]
		}
	}
	return v
}
