package mdlive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdlive/internal/browser"
)

// recordingOpener captures Open targets.
type recordingOpener struct {
	targets []string
	err     error
}

func (o *recordingOpener) Open(target string) error {
	o.targets = append(o.targets, target)
	return o.err
}

// ---------------------------------------------------------------------------
// TestPreview - Static mode output and browser handling
// ---------------------------------------------------------------------------

func TestPreview_WritesTempFileAndOpens(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	opener := &recordingOpener{}
	dir := t.TempDir()
	p := NewStaticPreviewer(r, opener, WithTempDir(dir))

	in := Input{Name: "notes.md", Markdown: []byte("# Notes\n\nbody"), Reload: ReloadSSE}
	path, err := p.Preview(context.Background(), in)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("path %q not in temp dir %q", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "markdown_preview_") || !strings.HasSuffix(base, ".html") {
		t.Errorf("file name = %q, want markdown_preview_*.html", base)
	}
	if len(opener.targets) != 1 || opener.targets[0] != path {
		t.Errorf("opened %v, want [%s]", opener.targets, path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// Static output is the same page a direct render produces, minus reload.
	in.Reload = ReloadNone
	want, err := r.Render(context.Background(), in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != string(want.HTML) {
		t.Error("static output differs from direct render")
	}
	if strings.Contains(string(got), "EventSource") {
		t.Error("static output should not contain a reload script")
	}
}

func TestPreview_OutputPath(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	out := filepath.Join(t.TempDir(), "preview.html")
	if err := os.WriteFile(out, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewStaticPreviewer(r, nil, WithOutputPath(out), WithOpen(false))
	path, err := p.Preview(context.Background(), Input{Markdown: []byte("# Fresh")})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if path != out {
		t.Errorf("path = %q, want %q", path, out)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `<h1 id="fresh">Fresh</h1>`) {
		t.Error("output not replaced")
	}
}

func TestPreview_Errors(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	t.Run("decode error writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opener := &recordingOpener{}
		p := NewStaticPreviewer(r, opener, WithTempDir(dir))
		_, err := p.Preview(context.Background(), Input{Markdown: []byte{0xff}})
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("error = %v, want ErrDecode", err)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("temp dir has %d files, want 0", len(entries))
		}
		if len(opener.targets) != 0 {
			t.Error("browser opened after failed render")
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "missing", "dir", "out.html")
		p := NewStaticPreviewer(r, nil, WithOutputPath(out), WithOpen(false))
		_, err := p.Preview(context.Background(), Input{Markdown: []byte("x")})
		if !errors.Is(err, ErrWriteOutput) {
			t.Errorf("error = %v, want ErrWriteOutput", err)
		}
	})

	t.Run("no browser", func(t *testing.T) {
		t.Parallel()

		opener := &recordingOpener{err: browser.ErrNoBrowser}
		p := NewStaticPreviewer(r, opener, WithTempDir(t.TempDir()))
		path, err := p.Preview(context.Background(), Input{Markdown: []byte("x")})
		if !errors.Is(err, ErrNoBrowser) {
			t.Fatalf("error = %v, want ErrNoBrowser", err)
		}
		if _, statErr := os.Stat(path); statErr != nil {
			t.Errorf("file should still exist: %v", statErr)
		}
	})

	t.Run("nil opener with open enabled", func(t *testing.T) {
		t.Parallel()

		p := NewStaticPreviewer(r, nil, WithTempDir(t.TempDir()))
		_, err := p.Preview(context.Background(), Input{Markdown: []byte("x")})
		if !errors.Is(err, ErrNoBrowser) {
			t.Errorf("error = %v, want ErrNoBrowser", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReadInput - File and stdin sources
// ---------------------------------------------------------------------------

func TestReadInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Doc"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		in, err := ReadInput(path, nil)
		if err != nil {
			t.Fatalf("ReadInput() error = %v", err)
		}
		if in.Name != "doc.md" {
			t.Errorf("Name = %q, want %q", in.Name, "doc.md")
		}
		if in.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", in.BaseDir, dir)
		}
		if string(in.Markdown) != "# Doc" {
			t.Errorf("Markdown = %q", in.Markdown)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		in, err := ReadInput("", strings.NewReader("from stdin"))
		if err != nil {
			t.Fatalf("ReadInput() error = %v", err)
		}
		if in.Name != "" {
			t.Errorf("Name = %q, want empty", in.Name)
		}
		if string(in.Markdown) != "from stdin" {
			t.Errorf("Markdown = %q", in.Markdown)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadInput(filepath.Join(dir, "nope.md"), nil)
		if !errors.Is(err, ErrReadSource) {
			t.Errorf("error = %v, want ErrReadSource", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}
