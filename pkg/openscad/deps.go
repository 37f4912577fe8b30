package openscad

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrMissingDependency is returned when a use or include statement names a
// file that cannot be found
var ErrMissingDependency = errors.New("missing dependency")

// Matches: use <file.scad>, include <file.scad>, use <./file.scad>, etc.
var statementRegex = regexp.MustCompile(`^\s*(use|include)\s*<([^>]+)>`)

// statement is one use or include found in a source file
type statement struct {
	keyword string
	target  string // resolved path
	source  string
	line    int
}

func (s statement) missing() error {
	return fmt.Errorf("%s:%d: %w: %s <%s>", s.source, s.line, ErrMissingDependency, s.keyword, s.target)
}

// ResolveDependencies walks the use/include graph of an OpenSCAD file and
// returns absolute paths in discovery order, starting with the file itself.
// Cycles are followed once. A statement naming a file that does not exist
// fails with ErrMissingDependency and the line it appears on.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	root := r.abs(scadFile)
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}

	visited := map[string]bool{root: true}
	deps := []string{root}

	queue := []string{root}
	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		statements, err := r.scanStatements(file)
		if err != nil {
			return nil, err
		}
		for _, st := range statements {
			if visited[st.target] {
				continue
			}
			if _, err := os.Stat(st.target); err != nil {
				return nil, st.missing()
			}
			visited[st.target] = true
			deps = append(deps, st.target)
			queue = append(queue, st.target)
		}
	}

	return deps, nil
}

// scanStatements lists the use/include statements of one file, skipping
// line and block comments.
func (r *Renderer) scanStatements(scadFile string) ([]statement, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var statements []statement
	scanner := bufio.NewScanner(file)
	dir := filepath.Dir(scadFile)
	inBlock := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		var line string
		line, inBlock = stripComments(scanner.Text(), inBlock)

		if m := statementRegex.FindStringSubmatch(line); m != nil {
			statements = append(statements, statement{
				keyword: m[1],
				target:  r.resolveDepPath(m[2], dir),
				source:  scadFile,
				line:    lineNo,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}

	return statements, nil
}

// stripComments removes // and /* */ comments from line. inBlock carries an
// unterminated block comment across lines.
func stripComments(line string, inBlock bool) (string, bool) {
	var b strings.Builder
	for len(line) > 0 {
		if inBlock {
			end := strings.Index(line, "*/")
			if end < 0 {
				return b.String(), true
			}
			line = line[end+2:]
			inBlock = false
			continue
		}

		lineComment := strings.Index(line, "//")
		blockComment := strings.Index(line, "/*")
		switch {
		case blockComment >= 0 && (lineComment < 0 || blockComment < lineComment):
			b.WriteString(line[:blockComment])
			line = line[blockComment+2:]
			inBlock = true
		case lineComment >= 0:
			b.WriteString(line[:lineComment])
			return b.String(), false
		default:
			b.WriteString(line)
			line = ""
		}
	}
	return b.String(), inBlock
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the renderer's working directory.
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if filepath.IsAbs(depPath) {
		return filepath.Clean(depPath)
	}

	local := filepath.Join(currentDir, depPath)
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Join(r.workDir, depPath)
}
