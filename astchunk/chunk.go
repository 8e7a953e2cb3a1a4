package astchunk

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/utils"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

const (
	VERSION   = 0.1
	SIGNATURE = `MINI_C`

	headerLen = 2 + len(SIGNATURE)
)

var (
	ErrNotChunk           = errors.New("not an ast chunk")
	ErrMismatchedHash     = errors.New("mismatched source hash")
	MismatchVersionPrefix = "mismatch version"
)

// chunk layout: '\x1b', version byte, SIGNATURE, json payload
type Chunk struct {
	Hash string        `json:"h"`
	Fn   *ast.Function `json:"f"`
}

func versionByte() byte {
	return byte(math.Float64bits(VERSION))
}

// IsChunk reports whether data carries the chunk header and returns
// the json payload after it.
func IsChunk(data []byte) (bool, []byte) {
	if len(data) < headerLen {
		return false, nil
	}
	if data[0] != '\x1b' || string(data[2:headerLen]) != SIGNATURE {
		return false, nil
	}
	return true, data[headerLen:]
}

// Dump serializes fn with the md5 hash of its source prepended, so
// Verify can tell a stale chunk from a current one.
func Dump(fn *ast.Function, hash string) ([]byte, error) {
	data, err := json.Marshal(Chunk{Hash: hash, Fn: fn})
	if err != nil {
		return nil, err
	}

	by := []byte{'\x1b', versionByte()}
	by = append(by, bytes.NewBufferString(SIGNATURE).Bytes()...)
	return append(by, data...), nil
}

func Undump(data []byte) (*ast.Function, string, error) {
	ok, payload := IsChunk(data)
	if !ok {
		return nil, "", ErrNotChunk
	}
	if data[1] != versionByte() {
		return nil, "", fmt.Errorf("%s: chunk 0x%02x, vm 0x%02x", MismatchVersionPrefix, data[1], versionByte())
	}

	var chunk Chunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return nil, "", err
	}
	if chunk.Fn == nil || chunk.Fn.Body == nil {
		return nil, "", ErrNotChunk
	}
	if chunk.Fn.Locals == nil {
		chunk.Fn.Locals = []string{}
	}
	if !normalize(chunk.Fn.Body) {
		return nil, "", ErrNotChunk
	}
	return chunk.Fn, chunk.Hash, nil
}

// Verify undumps data and checks its hash against src. On
// ErrMismatchedHash the decoded function is still returned, so a
// stale chunk can run when the source is gone.
func Verify(data, src []byte) (*ast.Function, error) {
	fn, hash, err := Undump(data)
	if err != nil {
		return nil, err
	}
	if hash != utils.Md5(src) {
		return fn, ErrMismatchedHash
	}
	return fn, nil
}

// The parser never leaves a block's Stmts nil, but json drops empty
// slices on the way out. Refill them so undumped trees compare equal
// to freshly parsed ones. A payload missing a required child or
// holding a null statement is damaged; normalize reports false and
// Undump rejects the chunk.
func normalize(node *ast.Node) bool {
	if node == nil {
		return true
	}
	switch node.Kind {
	case ast.NODE_EXPR_STMT, ast.NODE_RETURN:
		if node.Lhs == nil {
			return false
		}
	case ast.NODE_IF:
		if node.Cond == nil || node.Then == nil {
			return false
		}
	case ast.NODE_FOR:
		if node.Then == nil {
			return false
		}
	case ast.NODE_ASSIGN:
		if node.Lhs == nil || node.Rhs == nil {
			return false
		}
	case ast.NODE_BLOCK:
		if node.Stmts == nil {
			node.Stmts = []*ast.Node{}
		}
	}
	for _, child := range []*ast.Node{node.Lhs, node.Rhs, node.Cond, node.Then, node.Els, node.Init, node.Inc} {
		if !normalize(child) {
			return false
		}
	}
	for _, stmt := range node.Stmts {
		if stmt == nil || !normalize(stmt) {
			return false
		}
	}
	return true
}
