package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/mxdl/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	// Host is the site host used to build track page links.
	Host string
}

func WriteTracks(w io.Writer, tracks []models.Track, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tracks)
	case FormatCSV:
		return writeCSV(w, tracks, ',', opts.Host)
	case FormatTSV:
		return writeCSV(w, tracks, '\t', opts.Host)
	case FormatMarkdown:
		return writeMarkdown(w, tracks, opts.Host)
	default:
		return writeTable(w, tracks, opts)
	}
}

// ParseFormat maps a flag value or file extension to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func writeJSON(w io.Writer, tracks []models.Track) error {
	if tracks == nil {
		tracks = []models.Track{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tracks)
}

func writeCSV(w io.Writer, tracks []models.Track, delim rune, host string) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, track := range tracks {
		if err := writer.Write(csvRow(track, host)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, tracks []models.Track, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, track := range tracks {
		fmt.Fprintln(tw, strings.Join(tableRow(track, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, tracks []models.Track, host string) error {
	if len(tracks) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, track := range tracks {
		lines := []string{
			fmt.Sprintf("- **%s** (#%d)", safe(track.Name), track.TrackID),
			fmt.Sprintf("  Map name: %s", safe(track.GbxMapName)),
		}
		if track.Username != "" {
			lines = append(lines, fmt.Sprintf("  Uploader: %s", safe(track.Username)))
		}
		if track.MapType != "" {
			lines = append(lines, fmt.Sprintf("  Type: %s", safe(track.MapType)))
		}
		if track.UploadedAt != "" {
			lines = append(lines, fmt.Sprintf("  Uploaded: %s", safe(track.UploadedAt)))
		}
		if track.AwardCount > 0 {
			lines = append(lines, fmt.Sprintf("  Awards: %d", track.AwardCount))
		}
		if page := track.PageURL(host); page != "" {
			lines = append(lines, fmt.Sprintf("  URL: [Open track](<%s>)", page))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"site",
		"track_id",
		"name",
		"gbx_map_name",
		"username",
		"author_login",
		"map_type",
		"uploaded_at",
		"award_count",
		"url",
	}
}

func csvRow(track models.Track, host string) []string {
	return []string{
		track.Site,
		strconv.FormatInt(track.TrackID, 10),
		track.Name,
		track.GbxMapName,
		track.Username,
		track.AuthorLogin,
		track.MapType,
		track.UploadedAt,
		strconv.Itoa(track.AwardCount),
		track.PageURL(host),
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"id",
		"name",
		"uploader",
		"url",
	}
}

func tableRow(track models.Track, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	url := track.PageURL(opts.Host)
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}
	return []string{
		strconv.FormatInt(track.TrackID, 10),
		safe(track.Name),
		safe(track.Username),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}
