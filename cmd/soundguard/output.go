package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"soundguard/internal/api"
	"soundguard/internal/preflight"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

var titleCaser = cases.Title(language.English)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// humanize turns snake_case identifiers into title-cased labels.
func humanize(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return "-"
	}
	return titleCaser.String(value)
}

func outcomeColor(outcome string) string {
	switch outcome {
	case "safe":
		return ansiGreen
	case "blocked":
		return ansiRed
	case "service_error":
		return ansiYellow
	default:
		return ""
	}
}

func renderVerdict(w io.Writer, resp api.VerifyResponse, colorize bool) {
	label := humanize(resp.Outcome)
	if colorize {
		if color := outcomeColor(resp.Outcome); color != "" {
			label = color + label + ansiReset
		}
	}
	fmt.Fprintf(w, "%s: %s\n", label, resp.Message)

	rows := [][]string{
		{"Upload", resp.UploadID},
		{"Reason", humanize(resp.Reason)},
		{"Tier", humanize(resp.Tier)},
		{"Attempts", fmt.Sprintf("%d", resp.Attempts)},
	}
	if resp.Uploader != nil {
		rows = append(rows, []string{"Uploader", fmt.Sprintf("%s (%s, verified: %s)", resp.Uploader.DisplayName, resp.Uploader.ID, yesNo(resp.Uploader.Verified))})
	}
	if resp.Match != nil {
		match := resp.Match.Title
		if resp.Match.Artist != "" {
			match = fmt.Sprintf("%s by %s", match, resp.Match.Artist)
		}
		if resp.Match.Album != "" {
			match = fmt.Sprintf("%s (%s)", match, resp.Match.Album)
		}
		rows = append(rows, []string{"Match", match})
		rows = append(rows, []string{"Similarity", fmt.Sprintf("%.2f", resp.Similarity)})
	}
	if resp.Canonical != nil {
		rows = append(rows, []string{"Canonical owner", fmt.Sprintf("%s (%s)", resp.Canonical.DisplayName, resp.Canonical.ID)})
	}
	if len(resp.Featured) > 0 {
		rows = append(rows, []string{"Featured", strings.Join(resp.Featured, ", ")})
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Value"}, rows))
}

func renderArtists(w io.Writer, items []api.ArtistItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No artists in directory")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ID, item.DisplayName, yesNo(item.Verified), item.CreatedAt})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Name", "Verified", "Created"}, rows))
}

func renderPreflight(w io.Writer, results []preflight.Result, colorize bool) {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "fail"
		}
		if colorize {
			if result.Passed {
				status = ansiGreen + status + ansiReset
			} else {
				status = ansiRed + status + ansiReset
			}
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	fmt.Fprintln(w, renderTable([]string{"Check", "Status", "Detail"}, rows))
	passed, failed := preflight.Summary(results)
	fmt.Fprintf(w, "%d passed, %d failed\n", passed, failed)
}
