/*
 * compress.go, part of cctbx-project.
 *
 * Copyright 2026 The cctbx-project authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemjson

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression formats, chosen from the file extension.
const (
	Plain = iota
	Gzip
	Zstd
)

//Format returns the compression format for the file name.
func Format(name string) int {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	}
	return Plain
}

//why couldn't *zstd.Decoder implement io.ReadCloser?
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//fileReader closes both the decompressor and the file under it.
type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (F *fileReader) Close() error {
	err := F.ReadCloser.Close()
	if err2 := F.f.Close(); err == nil {
		err = err2
	}
	return err
}

type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (F *fileWriter) Close() error {
	err := F.WriteCloser.Close()
	if err2 := F.f.Close(); err == nil {
		err = err2
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//NewReader returns a reader that decompresses r with the given format.
func NewReader(r io.Reader, format int) (io.ReadCloser, error) {
	switch format {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	}
	return io.NopCloser(r), nil
}

//NewWriter returns a writer that compresses into w with the given format.
//The returned writer must be closed to flush the compressed stream. Closing it
//doesn't close w.
func NewWriter(w io.Writer, format int) (io.WriteCloser, error) {
	switch format {
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	return nopWriteCloser{w}, nil
}

//Open opens the file name for reading, decompressing it if the extension
//says it is compressed.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError("input", "chemjson.Open", err)
	}
	r, err := NewReader(f, Format(name))
	if err != nil {
		f.Close()
		return nil, NewError("input", "chemjson.Open", err)
	}
	return &fileReader{ReadCloser: r, f: f}, nil
}

//Create creates the file name for writing, compressing the content if the
//extension asks for it.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, NewError("output", "chemjson.Create", err)
	}
	w, err := NewWriter(f, Format(name))
	if err != nil {
		f.Close()
		return nil, NewError("output", "chemjson.Create", err)
	}
	return &fileWriter{WriteCloser: w, f: f}, nil
}
