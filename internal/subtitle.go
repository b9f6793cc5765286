package internal

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Subtitle payload formats the provider can hand back.
const (
	FormatVTT  = "vtt"
	FormatSRV3 = "srv3"
)

var (
	cueIndexRe  = regexp.MustCompile(`^\d+$`)
	inlineTagRe = regexp.MustCompile(`<[^>]+>`)
)

// DecodeSubtitle dispatches to the decoder for the given format. Unknown
// formats are treated as VTT-like cue text, which degrades to best-effort
// line extraction rather than failing.
func DecodeSubtitle(raw, format string) string {
	if format == FormatSRV3 {
		return DecodeSRV3(raw)
	}
	return DecodeVTT(raw)
}

// DecodeVTT reduces a WebVTT payload to plain caption text: header and
// timing-cue lines, numeric cue indices, and inline markup are dropped;
// non-breaking spaces and repeated whitespace collapse to single spaces.
func DecodeVTT(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" || strings.Contains(line, "WEBVTT") || strings.Contains(line, "-->") {
			continue
		}
		if cueIndexRe.MatchString(line) {
			continue
		}
		line = inlineTagRe.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, "&nbsp;", " ")
		line = strings.ReplaceAll(line, " ", " ")
		line = collapseWhitespace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// DecodeSRV3 extracts caption text from YouTube's timed-XML format. Text
// inside <p> elements is collected in document order; if none is found the
// generic <text> elements are used instead. Malformed XML falls back to a
// blunt tag-strip of the raw payload, so decoding never fails outright.
func DecodeSRV3(raw string) string {
	paragraphs, texts, err := collectTimedXMLText(raw)
	if err != nil {
		plain := inlineTagRe.ReplaceAllString(raw, " ")
		return collapseWhitespace(plain)
	}
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}
	return strings.Join(texts, "\n")
}

// collectTimedXMLText walks the XML token stream once, gathering character
// data that appears inside <p> and <text> elements.
func collectTimedXMLText(raw string) (paragraphs, texts []string, err error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	decoder.Strict = false

	var pDepth, textDepth int
	var pBuf, textBuf strings.Builder

	flush := func(buf *strings.Builder, out *[]string) {
		if s := collapseWhitespace(buf.String()); s != "" {
			*out = append(*out, s)
		}
		buf.Reset()
	}

	for {
		tok, tokErr := decoder.Token()
		if tokErr != nil {
			if errors.Is(tokErr, io.EOF) {
				return paragraphs, texts, nil
			}
			return nil, nil, tokErr
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				pDepth++
			case "text":
				textDepth++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if pDepth > 0 {
					pDepth--
					if pDepth == 0 {
						flush(&pBuf, &paragraphs)
					}
				}
			case "text":
				if textDepth > 0 {
					textDepth--
					if textDepth == 0 {
						flush(&textBuf, &texts)
					}
				}
			}
		case xml.CharData:
			if pDepth > 0 {
				pBuf.Write(t)
			} else if textDepth > 0 {
				textBuf.Write(t)
			}
		}
	}
}
