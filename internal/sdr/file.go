package sdr

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// File-backed sample streams: interleaved little-endian float32 I/Q pairs,
// the interchange format most capture tools produce.

// FileSource reads samples from an IQ file.
type FileSource struct {
	f   *os.File
	r   *bufio.Reader
	buf []byte
}

// OpenFileSource opens an IQ file for reading.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample source: %w", err)
	}
	return &FileSource{f: f, r: bufio.NewReaderSize(f, 1<<16)}, nil
}

// GetSamples implements Source.
func (s *FileSource) GetSamples(n int, out []complex128) (int, error) {
	need := n * 8
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	read, err := io.ReadFull(s.r, s.buf[:need])
	read -= read % 8

	for i := 0; i < read/8; i++ {
		re := math.Float32frombits(binary.LittleEndian.Uint32(s.buf[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(s.buf[i*8+4:]))
		out[i] = complex(float64(re), float64(im))
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return read / 8, err
}

// Close closes the underlying file.
func (s *FileSource) Close() error { return s.f.Close() }

// FileSink writes samples to an IQ file.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

// CreateFileSink creates (or truncates) an IQ file for writing.
func CreateFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sample sink: %w", err)
	}
	return &FileSink{f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

// SendBurstSync implements Sink.
func (s *FileSink) SendBurstSync(samples []complex128) error {
	var b [8]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(real(v))))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(imag(v))))
		if _, err := s.w.Write(b[:]); err != nil {
			return fmt.Errorf("write burst: %w", err)
		}
	}
	return s.w.Flush()
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
