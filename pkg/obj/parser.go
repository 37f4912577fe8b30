package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/objmetrics/pkg/geometry"
)

// maxLineLength bounds a single OBJ line
const maxLineLength = 1024 * 1024

// Option configures parsing
type Option func(*parser)

// WithStrict makes a malformed numeric token a *ParseError. The default is
// lenient: the token is read as 0 and a warning is logged.
func WithStrict(strict bool) Option {
	return func(p *parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger used for lenient-mode warnings and the parse
// summary. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

type parser struct {
	strict bool
	logger *zap.Logger

	mesh        *Mesh
	line        int
	ignored     int
	substituted int
}

// Parse reads an OBJ file and returns its Mesh
func Parse(filename string, opts ...Option) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, opts...)
}

// ParseReader reads OBJ text line by line. Lines starting with "v " are
// vertices and lines starting with "f " are triangular faces; an "o " line
// names the mesh. Everything else is ignored. Only the first three values
// of a record are used.
//
// Face indices are 1-based and must refer to a vertex declared on an
// earlier line; anything else fails with an error wrapping
// ErrDanglingFace. No partial mesh is returned on error.
func ParseReader(r io.Reader, opts ...Option) (*Mesh, error) {
	p := &parser{
		logger: zap.NewNop(),
		mesh:   NewMesh(""),
	}
	for _, opt := range opts {
		opt(p)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	p.logger.Debug("parsed mesh",
		zap.String("name", p.mesh.Name),
		zap.Int("lines", p.line),
		zap.Int("vertices", p.mesh.VertexCount()),
		zap.Int("faces", p.mesh.FaceCount()),
		zap.Int("ignored", p.ignored),
		zap.Int("substituted", p.substituted))

	return p.mesh, nil
}

func (p *parser) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, "v "):
		return p.parseVertex(strings.Fields(line[2:]))
	case strings.HasPrefix(line, "f "):
		return p.parseFace(strings.Fields(line[2:]))
	case strings.HasPrefix(line, "o "):
		if p.mesh.Name == "" {
			p.mesh.Name = strings.TrimSpace(line[2:])
		}
	default:
		p.ignored++
	}
	return nil
}

func (p *parser) parseVertex(values []string) error {
	if len(values) < 3 {
		return &ParseError{Line: p.line, Err: ErrTruncatedRecord}
	}

	var coords [3]float64
	for i := range coords {
		f, err := p.parseFloat(values[i])
		if err != nil {
			return err
		}
		coords[i] = f
	}

	p.mesh.AddVertex(geometry.NewVector3(coords[0], coords[1], coords[2]))
	return nil
}

func (p *parser) parseFace(values []string) error {
	if len(values) < 3 {
		return &ParseError{Line: p.line, Err: ErrTruncatedRecord}
	}

	var face Face
	for i := range face.V {
		n, err := p.parseIndex(values[i])
		if err != nil {
			return err
		}
		// 1-based in the file
		face.V[i] = n - 1
	}

	if err := p.mesh.AddFace(face); err != nil {
		return &ParseError{Line: p.line, Err: err}
	}
	return nil
}

// parseFloat parses a coordinate. Out-of-range values keep the infinity
// strconv returns.
func (p *parser) parseFloat(token string) (float64, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	return 0, p.malformed(token)
}

// parseIndex parses the vertex part of a face token; "7", "7/1" and
// "7/1/3" all give 7.
func (p *parser) parseIndex(token string) (int, error) {
	vertex, _, _ := strings.Cut(token, "/")
	n, err := strconv.Atoi(vertex)
	if err == nil {
		return n, nil
	}
	return 0, p.malformed(token)
}

// malformed applies the numeric policy: an error in strict mode, a logged
// substitution of 0 otherwise.
func (p *parser) malformed(token string) error {
	if p.strict {
		return &ParseError{Line: p.line, Token: token, Err: ErrMalformedNumber}
	}
	p.substituted++
	p.logger.Warn("malformed number, using 0",
		zap.Int("line", p.line),
		zap.String("token", token))
	return nil
}
