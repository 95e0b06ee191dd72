package suricata

import "examguard/internal/core/domain"

// DefaultLogDir is where Suricata writes logs when default-log-dir is unset.
const DefaultLogDir = "/var/log/suricata/"

// Grammar implements ports.ConfigGrammar.
type Grammar struct {
	// LogDir replaces a missing default-log-dir; empty keeps it missing
	LogDir string
}

// NewGrammar returns a Grammar that falls back to DefaultLogDir.
func NewGrammar() *Grammar {
	return &Grammar{LogDir: DefaultLogDir}
}

// ScanFile scans the config at path.
func (g *Grammar) ScanFile(path string) (domain.ConfigScan, error) {
	res, err := ScanFile(path)
	if err != nil {
		return res, err
	}
	if res.FastLogEnabled && res.Target.Dir == "" {
		res.Target.Dir = g.LogDir
	}
	return res, nil
}

// CountErrors counts error lines in a config self-test output.
func (g *Grammar) CountErrors(output string) int {
	return CountErrors(output)
}
