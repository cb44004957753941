package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/battlemap/internal/mapgen"
)

// writeSummary renders s as aligned text or as a YAML document.
func writeSummary(w io.Writer, format string, s mapgen.Summary) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, s mapgen.Summary) error {
	fmt.Fprintf(w, "Seed:    %s\n", s.Seed)
	fmt.Fprintf(w, "Size:    %.0f x %.0f\n", s.Width, s.Height)
	fmt.Fprintf(w, "River:   %s\n", s.River)
	fmt.Fprintf(w, "POIs:    %d\n", s.POIs)
	fmt.Fprintf(w, "Nav:     %d nodes, %d edges\n", s.Nodes, s.Edges)
	fmt.Fprintln(w, "Obstacles:")
	for _, b := range mapgen.AllBiomes {
		if n := s.Obstacles[b]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", b, n)
		}
	}
	fmt.Fprintln(w, "Zones:")
	for _, b := range mapgen.AllBiomes {
		if n := s.Zones[b]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", b, n)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
