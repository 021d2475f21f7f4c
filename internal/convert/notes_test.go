package convert

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const slideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree/></p:cSld></p:sld>`

const slideRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/></Relationships>`

// notesSlideXML carries a slide-number placeholder ahead of the notes body,
// like PowerPoint emits; its text must never leak into extracted notes.
const notesSlideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Number Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="sldNum" sz="quarter" idx="10"/></p:nvPr></p:nvSpPr><p:txBody><a:bodyPr/><a:p><a:r><a:t>99</a:t></a:r></a:p></p:txBody></p:sp><p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:txBody><a:bodyPr/>%s</p:txBody></p:sp></p:spTree></p:cSld></p:notes>`

// writePPTXFixture builds a minimal .pptx with len(notes) slides; notes[i]
// is the speaker-notes text of slide i+1, "" meaning no notes part. Notes
// parts are numbered by creation order, independently of slide numbers,
// which is exactly why extraction must go through the .rels files.
func writePPTXFixture(t *testing.T, path string, notes []string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	notesIdx := 0
	for i, note := range notes {
		n := i + 1
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML)
		if note == "" {
			continue
		}
		notesIdx++
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), fmt.Sprintf(slideRelsXML, notesIdx))

		var body strings.Builder
		for _, para := range strings.Split(note, "\n") {
			fmt.Fprintf(&body, "<a:p><a:r><a:t>%s</a:t></a:r></a:p>", para)
		}
		add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", notesIdx), fmt.Sprintf(notesSlideXML, body.String()))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture zip: %v", err)
	}
}

func TestExtractNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	writePPTXFixture(t, path, []string{"note1", "", "note3"})

	got, err := extractNotes(path)
	if err != nil {
		t.Fatalf("extractNotes: %v", err)
	}
	want := []string{"note1", "", "note3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractNotes = %q, want %q", got, want)
	}
}

func TestExtractNotesMultiParagraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	writePPTXFixture(t, path, []string{"first line\nsecond line"})

	got, err := extractNotes(path)
	if err != nil {
		t.Fatalf("extractNotes: %v", err)
	}
	if len(got) != 1 || got[0] != "first line\nsecond line" {
		t.Errorf("extractNotes = %q, want one note with paragraphs joined by newline", got)
	}
}

func TestExtractNotesAllEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	writePPTXFixture(t, path, []string{"", ""})

	got, err := extractNotes(path)
	if err != nil {
		t.Fatalf("extractNotes: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"", ""}) {
		t.Errorf("extractNotes = %q, want two empty strings", got)
	}
}

func TestExtractNotesCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := extractNotes(path)
	if !errors.Is(err, ErrNotesExtraction) {
		t.Errorf("extractNotes on corrupt file = %v, want ErrNotesExtraction", err)
	}
}

func TestResolvePart(t *testing.T) {
	tests := []struct {
		base, target, want string
	}{
		{"ppt/slides", "../notesSlides/notesSlide1.xml", "ppt/notesSlides/notesSlide1.xml"},
		{"ppt/slides", "/ppt/notesSlides/notesSlide2.xml", "ppt/notesSlides/notesSlide2.xml"},
		{"ppt/slides", "other/part.xml", "ppt/slides/other/part.xml"},
	}
	for _, tt := range tests {
		if got := resolvePart(tt.base, tt.target); got != tt.want {
			t.Errorf("resolvePart(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
		}
	}
}
