package toolkit

import (
	"fmt"
	"strings"
)

// probeVersion extracts a version string from the install's ANTS binary.
// Modern builds answer --version; legacy builds print a usage banner, so
// the first dotted token of whatever comes back is taken as the version.
func (m *Manager) probeVersion(in *Install) string {
	bin, ok := in.Binaries[toolANTS]
	if !ok {
		return strUnknown
	}
	cmd := execCommand(bin, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil && len(output) == 0 {
		return strUnknown
	}

	lines := strings.Split(string(output), "\n")
	for _, line := range lines {
		for _, tok := range strings.Fields(line) {
			tok = strings.TrimPrefix(tok, "v")
			if tok == "" {
				continue
			}
			if strings.Count(tok, ".") >= 1 && tok[0] >= '0' && tok[0] <= '9' {
				return tok
			}
		}
	}
	return strUnknown
}

// FormatInstall returns a formatted string for install display
func FormatInstall(in *Install) string {
	if in == nil {
		return ""
	}
	if !in.Complete() {
		return fmt.Sprintf("%s %s (missing %s)", in.Dir, in.Version, strings.Join(in.Missing, ", "))
	}
	return fmt.Sprintf("%s %s", in.Dir, in.Version)
}
