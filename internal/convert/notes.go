package convert

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// A PPTX is a zip of OOXML parts. Slides live at ppt/slides/slideN.xml and
// each slide's notes part is reachable only through its relationship file;
// notesSlide part numbering does not track slide order, so name matching is
// not enough.
var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

const notesRelType = "/notesSlide"

// extractNotes returns the speaker-notes text of every slide in slide
// order, with "" for slides that have no notes part. Structural corruption
// (not a zip, malformed XML) is an error; missing notes never are.
func extractNotes(pptxPath string) ([]string, error) {
	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrNotesExtraction, pptxPath, err)
	}
	defer zr.Close()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	var nums []int
	for name := range parts {
		if m := slidePartRe.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)

	texts := make([]string, 0, len(nums))
	for _, n := range nums {
		target, err := notesTarget(parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)])
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d relationships: %v", ErrNotesExtraction, n, err)
		}
		if target == "" {
			texts = append(texts, "")
			continue
		}
		part, ok := parts[resolvePart("ppt/slides", target)]
		if !ok {
			texts = append(texts, "")
			continue
		}
		text, err := notesBodyText(part)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d notes: %v", ErrNotesExtraction, n, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

type relationships struct {
	Rels []struct {
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// notesTarget returns the notes-slide target of a slide's .rels part, or ""
// when the slide has none (including when the .rels part itself is absent).
func notesTarget(f *zip.File) (string, error) {
	if f == nil {
		return "", nil
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel
	var rels relationships
	if err := dec.Decode(&rels); err != nil {
		return "", err
	}
	for _, r := range rels.Rels {
		if strings.HasSuffix(r.Type, notesRelType) {
			return r.Target, nil
		}
	}
	return "", nil
}

// resolvePart resolves a relationship target (usually relative, like
// "../notesSlides/notesSlide1.xml") against the source part's directory.
func resolvePart(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// notesBodyText pulls the text of the notes body placeholder. A notes
// slide also carries slide-image and slide-number placeholders whose text
// must not leak into the result, so only shapes whose <p:ph> is of type
// "body" contribute. Paragraphs are joined with newlines.
func notesBodyText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		paras   []string
		cur     strings.Builder
		inShape bool
		isBody  bool
		inText  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				inShape, isBody = true, false
				paras = paras[:0]
				cur.Reset()
			case "ph":
				if inShape {
					for _, a := range el.Attr {
						if a.Name.Local == "type" && a.Value == "body" {
							isBody = true
						}
					}
				}
			case "t":
				inText = inShape
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inShape {
					paras = append(paras, cur.String())
					cur.Reset()
				}
			case "sp":
				if isBody {
					return strings.Join(paras, "\n"), nil
				}
				inShape = false
			}
		case xml.CharData:
			if inText {
				cur.Write(el)
			}
		}
	}
	return "", nil
}
