package tui

import (
	"fmt"
	"strings"
)

// gradient is the Indigo/Violet banner palette.
var gradient = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// Banner writes the CLI banner with version.
func (p *Printer) Banner(version string) {
	const name = "automata"
	var sb strings.Builder
	for i, r := range name {
		color := gradient[i*len(gradient)/len(name)]
		sb.WriteString(p.profile.String(string(r)).Foreground(p.profile.Color(color)).Bold().String())
	}
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "  %s %s\n", sb.String(), p.dim("v"+version))
	fmt.Fprintln(p.w)
}
