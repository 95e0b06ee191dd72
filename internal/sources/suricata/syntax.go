package suricata

import (
	"bufio"
	"strings"
)

// error line prefixes printed by `suricata -T`
var errorPrefixes = []string{"E:", "Error:"}

// CountErrors counts the lines of a config self-test output that report an
// error. Lines are matched at column zero.
func CountErrors(output string) int {
	count := 0
	sc := bufio.NewScanner(strings.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		for _, p := range errorPrefixes {
			if strings.HasPrefix(line, p) {
				count++
				break
			}
		}
	}
	return count
}
