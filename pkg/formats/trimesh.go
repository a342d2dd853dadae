// Package formats implements parsers for the asset formats the viewer consumes.
package formats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Faultbox/walkabout/pkg/math"
)

// A trimesh file is plain text. Any line containing exactly five decimal
// numbers (x, y, z, u, v) is a vertex row; everything else (comments, blank
// lines, headers) is ignored. Consecutive rows are consumed in groups of
// three to form triangles, and a trailing partial group is dropped.

// rowTokens is the number of numeric tokens that make a line a vertex row.
const rowTokens = 5

// numberPattern matches signed decimal numbers with a mandatory decimal
// point, e.g. "-12.500" or "0.0". Integers without a point do not count.
var numberPattern = regexp.MustCompile(`-?\d+\.\d+`)

// Vertex is a single mesh vertex. The texture coordinate is stored as a Vec3
// with an unused third component, matching the vertex layout uploaded to the
// GPU.
type Vertex struct {
	Position math.Vec3
	TexCoord math.Vec3
}

// Triangle is three ordered vertices; the order defines the facing.
// The zero value is the degenerate placeholder triangle: all vertices at the
// origin with texture coordinate (0, 0).
type Triangle [3]Vertex

// Mesh is an ordered sequence of triangles.
type Mesh struct {
	Triangles []Triangle
}

// MatchNumbers returns the decimal number tokens found in line, left to
// right. A line with no matches yields an empty result, never an error.
func MatchNumbers(line string) []string {
	return numberPattern.FindAllString(line, -1)
}

// DecodeMesh parses trimesh text into a Mesh.
//
// Malformed input never fails: lines without exactly five number tokens are
// skipped, tokens that do not parse become 0.0, and a trailing group of one
// or two rows is dropped. Decoding the same text always yields the same mesh.
func DecodeMesh(text string) Mesh {
	var rows [][rowTokens]float32
	for _, line := range strings.Split(text, "\n") {
		tokens := MatchNumbers(line)
		if len(tokens) != rowTokens {
			continue
		}
		var row [rowTokens]float32
		for i, tok := range tokens {
			row[i] = parseFloat(tok)
		}
		rows = append(rows, row)
	}

	mesh := Mesh{}
	for i := 0; i+3 <= len(rows); i += 3 {
		mesh.Triangles = append(mesh.Triangles, triangleFromRows(rows[i:i+3]))
	}
	return mesh
}

// parseFloat converts a token to float32, falling back to 0 on failure so a
// bad value never aborts the decode.
func parseFloat(tok string) float32 {
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

// triangleFromRows builds a triangle from a group of three vertex rows.
// A group of any other size yields the degenerate placeholder triangle.
func triangleFromRows(rows [][rowTokens]float32) Triangle {
	if len(rows) != 3 {
		return Triangle{}
	}
	var tri Triangle
	for i, row := range rows {
		tri[i] = Vertex{
			Position: math.Vec3{X: row[0], Y: row[1], Z: row[2]},
			TexCoord: math.Vec3{X: row[3], Y: row[4]},
		}
	}
	return tri
}
