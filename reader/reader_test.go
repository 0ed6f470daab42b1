package reader

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestUniversalReader(t *testing.T) {
	s := "\xef\xbb\xbfhello world!\r"

	r := bytes.NewBufferString(s)
	ur := &UniversalReader{r}

	buf := make([]byte, 20)
	n, err := ur.Read(buf)

	if err != nil {
		t.Fatalf("problem reading: %s", err)
	}

	if cap(buf) != 20 {
		t.Fatalf("expected 20 cap, got %d", cap(buf))
	}

	if len(s)-3 != n {
		t.Errorf("expected %d bytes, got %d", len(s)-3, n)
	}

	exp := "hello world!\n"

	if string(buf[:n]) != exp {
		t.Errorf("expected '%v', got '%v'", exp, string(buf[:n]))
	}
}

func TestOpenDecompressesGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte("id,name\n1,alice\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, "")
	if err != nil {
		t.Fatalf("problem opening: %s", err)
	}
	defer r.Close()

	if r.Compression != "gzip" {
		t.Errorf("expected gzip compression, got %q", r.Compression)
	}

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("problem reading: %s", err)
	}
	if string(got) != "id,name\n1,alice\n" {
		t.Errorf("expected decompressed content, got %q", string(got))
	}
}

func TestOpenRejectsUnknownCompression(t *testing.T) {
	_, err := Open("data.csv", "lz4")
	if err == nil {
		t.Fatal("expected an error for an unknown compression type")
	}
}
