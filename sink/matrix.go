package sink

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNoMatrix is returned by OpenMatrix when no display of the requested kind is available.
var ErrNoMatrix = errors.New("display matrix not available")

const (
	MatrixNone     = "none"
	MatrixTerminal = "terminal"
)

// Matrix is a pixel display that shows one full frame at a time.
type Matrix interface {
	Bounds() image.Rectangle
	// Swap replaces the displayed frame with frame in one step.
	Swap(frame *image.RGBA) error
	Close() error
}

// OpenMatrix opens the display named by kind with the given pixel size.
func OpenMatrix(kind string, out *os.File, cols, rows int) (Matrix, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", MatrixNone:
		return nil, ErrNoMatrix
	case MatrixTerminal:
		if out == nil || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
			return nil, fmt.Errorf("%w: output is not a terminal", ErrNoMatrix)
		}
		return NewTerminalMatrix(out, cols, rows), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrNoMatrix, kind)
	}
}

// TerminalMatrix renders frames with ANSI truecolor escapes, two pixel rows per text line
// using upper half blocks.
type TerminalMatrix struct {
	w    io.Writer
	rect image.Rectangle
}

func NewTerminalMatrix(w io.Writer, cols, rows int) *TerminalMatrix {
	return &TerminalMatrix{w: w, rect: image.Rect(0, 0, cols, rows)}
}

func (t *TerminalMatrix) Bounds() image.Rectangle { return t.rect }

func (t *TerminalMatrix) Swap(frame *image.RGBA) error {
	bw := bufio.NewWriter(t.w)
	bw.WriteString("\x1b[H\x1b[2J")
	for y := t.rect.Min.Y; y < t.rect.Max.Y; y += 2 {
		for x := t.rect.Min.X; x < t.rect.Max.X; x++ {
			top := frame.RGBAAt(x, y)
			bottom := frame.RGBAAt(x, y+1)
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		bw.WriteString("\x1b[0m\n")
	}
	return bw.Flush()
}

func (t *TerminalMatrix) Close() error {
	_, err := io.WriteString(t.w, "\x1b[0m")
	return err
}
