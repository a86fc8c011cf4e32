package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/mxdl/internal/models"
)

const testHost = "https://tm.mania-exchange.com"

func sampleTracks() []models.Track {
	return []models.Track{
		{Site: "tm", TrackID: 12, Name: "Speed, Run", GbxMapName: "$f00Speed", Username: "jon", AwardCount: 3},
		{Site: "tm", TrackID: 13, Name: "Calm", GbxMapName: "Calm"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, sampleTracks(), FormatCSV, WriteOptions{Host: testHost}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != strings.Join(csvHeader(), ",") {
		t.Fatalf("header = %q", lines[0])
	}
	want := `tm,12,"Speed, Run",$f00Speed,jon,,,,3,https://tm.mania-exchange.com/tracks/12`
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, sampleTracks()[1:], FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	if !strings.Contains(buf.String(), "tm\t13\tCalm\tCalm") {
		t.Fatalf("tsv output = %q", buf.String())
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("json output = %q, want []", buf.String())
	}

	buf.Reset()
	if err := WriteTracks(&buf, sampleTracks(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	var decoded []models.Track
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(decoded) != 2 || decoded[0].TrackID != 12 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	if buf.String() != "No results.\n" {
		t.Fatalf("markdown empty = %q", buf.String())
	}

	buf.Reset()
	if err := WriteTracks(&buf, sampleTracks(), FormatMarkdown, WriteOptions{Host: testHost}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- **Speed, Run** (#12)", "  Awards: 3", "[Open track](<https://tm.mania-exchange.com/tracks/13>)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q in %q", want, out)
		}
	}
}

func TestWriteTablePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, sampleTracks(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteTracks() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b") {
		t.Fatalf("table contains escape codes without colour: %q", out)
	}
	if !strings.HasPrefix(out, "id") || !strings.Contains(out, "Speed, Run") {
		t.Fatalf("table output = %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"csv":      FormatCSV,
		".json":    FormatJSON,
		"Markdown": FormatMarkdown,
		"tsv":      FormatTSV,
		"":         FormatTable,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("ParseFormat(xml) error = nil, want error")
	}
}
