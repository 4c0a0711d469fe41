// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package archive wraps the ZIP container used by archive-mode backups.
package archive

import (
	"archive/zip"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// Ext is the file extension every archive carries.
const Ext = ".zip"

var (
	ErrMissing = errors.Base("archive does not exist")
	ErrEmpty   = errors.Base("archive is empty")
	ErrCorrupt = errors.Base("archive is corrupt")
	// ErrPartialEntry means an entry header was written but its content could
	// not be read to the end. The truncated entry stays in the archive.
	ErrPartialEntry = errors.Base("partial archive entry")
)

// 📦 Writer streams files into a deflate-compressed ZIP
type Writer struct {
	f  *os.File
	zw *zip.Writer
}

// 🏭 Create creates (or truncates) the archive at path
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Errorf("creating archive: %w", err)
	}
	return &Writer{f: f, zw: zip.NewWriter(f)}, nil
}

// Add copies the file at src into the archive under name.
// name must be slash separated and relative. Failures before the entry is
// created leave the archive untouched; a read failure after that returns
// ErrPartialEntry.
func (w *Writer) Add(name, src string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return 0, errors.Errorf("%s: not a regular file", src)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, errors.Errorf("building header for %s: %w", src, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	return w.write(hdr, in)
}

func (w *Writer) write(hdr *zip.FileHeader, r io.Reader) (int64, error) {
	out, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return 0, errors.Errorf("creating entry %s: %w", hdr.Name, err)
	}

	n, err := io.Copy(out, r)
	if err != nil {
		return n, errors.Errorf("%w: %s after %d bytes: %s", ErrPartialEntry, hdr.Name, n, err)
	}
	return n, nil
}

// Close finalizes the central directory and closes the file.
func (w *Writer) Close() error {
	zerr := w.zw.Close()
	ferr := w.f.Close()
	if zerr != nil {
		return errors.Errorf("finalizing archive: %w", zerr)
	}
	if ferr != nil {
		return errors.Errorf("closing archive: %w", ferr)
	}
	return nil
}

// 🔍 Test opens the archive and reads every entry to the end so each CRC-32 is
// checked. A missing or zero-byte file fails.
func Test(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Errorf("%w: %s", ErrMissing, path)
		}
		return 0, errors.Errorf("stat archive: %w", err)
	}
	if info.Size() == 0 {
		return 0, errors.Errorf("%w: %s", ErrEmpty, path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return 0, errors.Errorf("%w: %s", ErrCorrupt, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := testEntry(f); err != nil {
			return 0, errors.Errorf("%w: entry %s: %s", ErrCorrupt, f.Name, err)
		}
	}
	return len(r.File), nil
}

func testEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}

// List returns the entry names in central-directory order.
func List(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntry returns the content of a single entry.
func ReadEntry(path, name string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Errorf("opening entry %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, errors.Errorf("entry %s not found", name)
}
