package packfs

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/smholvoet/Dump1090/pkg/types"
)

var hexLiteral = regexp.MustCompile(`0x[0-9A-F]{2}`)

// decodeArray parses the emitted array literal back into bytes, sentinel
// included. Annotations after "//" are ignored.
func decodeArray(t *testing.T, output string) []byte {
	t.Helper()
	open := strings.Index(output, "[] = {")
	if open < 0 {
		t.Fatalf("no array literal in output:\n%s", output)
	}
	body := output[open+len("[] = {"):]
	end := strings.Index(body, "};")
	if end < 0 {
		t.Fatalf("unterminated array literal:\n%s", output)
	}
	body = body[:end]

	var decoded []byte
	for _, line := range strings.Split(body, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, tok := range hexLiteral.FindAllString(line, -1) {
			v, err := strconv.ParseUint(tok[2:], 16, 8)
			if err != nil {
				t.Fatalf("bad byte literal %q: %v", tok, err)
			}
			decoded = append(decoded, byte(v))
		}
	}
	return decoded
}

func encodeFile(t *testing.T, name, content string, minify, comments bool) (string, *types.Entry, int64, int64) {
	t.Helper()
	root := writeTree(t, map[string]string{name: content})

	var buf bytes.Buffer
	enc := &encoder{
		w:          &buf,
		transforms: newTransforms(),
		minify:     minify,
		comments:   comments,
	}
	entry := &types.Entry{Path: root + "/" + name, Name: name}
	lenIn, lenOut, err := enc.encode(entry, 0)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return buf.String(), entry, lenIn, lenOut
}

func TestEncodePassThroughRoundTrip(t *testing.T) {
	content := make([]byte, 256)
	for i := range content {
		content[i] = byte(i)
	}
	root := t.TempDir()
	if err := os.WriteFile(root+"/blob.bin", content, 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	enc := &encoder{w: &buf, transforms: newTransforms(), comments: true}
	entry := &types.Entry{Path: root + "/blob.bin"}
	lenIn, lenOut, err := enc.encode(entry, 0)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if lenIn != 256 || lenOut != 256 {
		t.Errorf("pass-through lengths: in=%d out=%d, want 256/256", lenIn, lenOut)
	}
	if entry.Stored != 256 {
		t.Errorf("entry.Stored = %d, want 256", entry.Stored)
	}

	decoded := decodeArray(t, buf.String())
	if len(decoded) != 257 {
		t.Fatalf("decoded %d bytes, want 256 content + 1 sentinel", len(decoded))
	}
	if decoded[256] != 0 {
		t.Errorf("sentinel element is 0x%02X, want 0x00", decoded[256])
	}
	if !bytes.Equal(decoded[:256], content) {
		t.Error("decoded content differs from original")
	}
}

func TestEncodeSixteenBytesPerLine(t *testing.T) {
	output, _, _, _ := encodeFile(t, "blob.bin", strings.Repeat("x", 40), false, false)

	var counts []int
	inArray := false
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasSuffix(line, "[] = {"):
			inArray = true
		case strings.HasPrefix(line, "};"):
			inArray = false
		case inArray:
			counts = append(counts, len(hexLiteral.FindAllString(line, -1)))
		}
	}
	// 40 content bytes: two full lines of 16, then 8 + the sentinel.
	want := []int{16, 16, 9}
	if len(counts) != len(want) {
		t.Fatalf("got %d value lines (%v), want %v", len(counts), counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("line %d holds %d values, want %d", i, counts[i], want[i])
		}
	}
}

func TestEncodeMinifyCSS(t *testing.T) {
	content := "body {\n  color:  red;\n  margin:  0px;\n}\n"
	output, entry, lenIn, lenOut := encodeFile(t, "style.css", content, true, true)

	if lenOut >= lenIn {
		t.Errorf("minified length %d not smaller than original %d", lenOut, lenIn)
	}
	if entry.Stored != lenOut {
		t.Errorf("entry.Stored = %d, want %d", entry.Stored, lenOut)
	}
	if !strings.Contains(output, "Minified version generated from") {
		t.Error("missing minified header comment")
	}
	if !strings.Contains(output, "% saving") {
		t.Error("missing saving percentage")
	}

	decoded := decodeArray(t, output)
	if int64(len(decoded)) != lenOut+1 {
		t.Errorf("decoded %d bytes, want %d content + sentinel", len(decoded), lenOut)
	}
}

func TestEncodeMinifiedAnnotations(t *testing.T) {
	// 20+ bytes of minified output so at least one full line is annotated.
	content := "body{color:#aabbccdd;background:#eeff0011}"

	output, _, _, _ := encodeFile(t, "style.css", content, true, true)
	inArray := false
	annotated := false
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasSuffix(line, "[] = {"):
			inArray = true
		case strings.HasPrefix(line, "};"):
			inArray = false
		case inArray && strings.Contains(line, " // "):
			annotated = true
		}
	}
	if !annotated {
		t.Error("expected printable annotations on minified output lines")
	}

	output, _, _, _ = encodeFile(t, "style.css", content, true, false)
	if strings.Contains(output[strings.Index(output, "[] = {"):], "//") {
		t.Error("annotations present despite comments being disabled")
	}
}

func TestEncodeAlreadyMinifiedSkipsMinifier(t *testing.T) {
	content := "body {  color:  red;  }"
	output, _, lenIn, lenOut := encodeFile(t, "style.min.css", content, true, true)

	if lenOut != lenIn {
		t.Errorf("already-minified file was re-minified: in=%d out=%d", lenIn, lenOut)
	}
	if strings.Contains(output, "Minified version") {
		t.Error("already-minified file must use the pass-through header")
	}
}

func TestEncodeMinifyDisabledIsPassThrough(t *testing.T) {
	content := "body {  color:  red;  }"
	_, _, lenIn, lenOut := encodeFile(t, "style.css", content, false, true)
	if lenOut != lenIn {
		t.Errorf("minify disabled but lengths differ: in=%d out=%d", lenIn, lenOut)
	}
}

func TestEncodeUnknownExtensionIsPassThrough(t *testing.T) {
	content := "some   plain   text"
	_, _, lenIn, lenOut := encodeFile(t, "readme.txt", content, true, true)
	if lenOut != lenIn {
		t.Errorf("unknown extension must pass through: in=%d out=%d", lenIn, lenOut)
	}
}

func TestEncodeUnreadableFile(t *testing.T) {
	var buf bytes.Buffer
	enc := &encoder{w: &buf, transforms: newTransforms()}
	entry := &types.Entry{Path: t.TempDir() + "/missing.txt"}
	_, _, err := enc.encode(entry, 0)
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if !strings.Contains(err.Error(), "reading '"+entry.Path+"'") {
		t.Errorf("error lacks file context: %v", err)
	}
}
