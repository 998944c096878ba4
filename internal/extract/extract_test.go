package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestText_ZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, "Jane Doe Senior Engineer")

	text, err := Text(context.Background(), data, "application/zip", "test.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Fatalf("expected document body in output, got %q", text)
	}
}

func TestText_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Text(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestText_PlainText(t *testing.T) {
	text, err := Text(context.Background(), []byte("  Jane Doe\njane@example.com  "), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if text != "Jane Doe\njane@example.com" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestText_OctetStreamFallsBackToExtension(t *testing.T) {
	text, err := Text(context.Background(), []byte("plain resume body"), "application/octet-stream", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "plain resume body" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestEmails(t *testing.T) {
	text := "Contact: Jane.Doe@Example.com, backup jane.doe@example.com and work@corp.io."
	got := Emails(text)
	want := []string{"jane.doe@example.com", "work@corp.io"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEmailsNoMatch(t *testing.T) {
	if got := Emails("no contact details here"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestQualityAndUsable(t *testing.T) {
	long := strings.Repeat("Senior software engineer with Go and Postgres experience. ", 10)
	if !Usable(long) {
		t.Fatalf("expected long prose to be usable (quality %f)", Quality(long))
	}
	if Usable("short") {
		t.Fatal("expected short text to be unusable")
	}
	if Quality("") != 0 {
		t.Fatal("expected empty text to score zero")
	}
	junk := strings.Repeat("%$#@! ", 50)
	if Usable(junk) {
		t.Fatalf("expected symbol soup to be unusable (quality %f)", Quality(junk))
	}
}
