// Package cache implements the serialised parse-tree sidecar of spec.md
// §6.2 (the ".sapped" format) and the file-based half of §4.10's import
// resolution, grounded on the teacher's lang/cache.go: gob encoding for
// the wire format, github.com/zeebo/xxh3 for the memoization key, and
// github.com/klauspost/readahead wrapping the source reader before
// hashing/parsing.
package cache

import (
	"encoding/gob"
	"io"

	"github.com/ardnew/sapling/ast"
)

func init() {
	for _, node := range []any{
		&ast.Code{}, &ast.Body{},
		&ast.Int{}, &ast.Float{}, &ast.Hex{}, &ast.Bool{}, &ast.String{},
		&ast.Regex{}, &ast.Nil{}, &ast.Id{}, &ast.Array{}, &ast.Dictionary{},
		&ast.ArrayComp{}, &ast.BinaryOp{}, &ast.UnaryOp{}, &ast.Index{},
		&ast.Attribute{}, &ast.Call{}, &ast.New{}, &ast.Assign{},
		&ast.FuncDef{}, &ast.AttrFuncDef{}, &ast.Struct{}, &ast.Enum{},
		&ast.SetSelf{}, &ast.If{}, &ast.While{}, &ast.Repeat{},
		&ast.Return{}, &ast.Break{}, &ast.Continue{}, &ast.Import{},
	} {
		gob.Register(node)
	}
}

// Encode writes code to w in the ".sapped" binary format (spec.md §6.2).
// Round-tripping through Encode/Decode must reproduce an AST equal to
// the one that produced it, positions included.
func Encode(w io.Writer, code *ast.Code) error {
	return gob.NewEncoder(w).Encode(code)
}

// Decode reads a ".sapped" tree previously written by Encode.
func Decode(r io.Reader) (*ast.Code, error) {
	var code ast.Code

	if err := gob.NewDecoder(r).Decode(&code); err != nil {
		return nil, err
	}

	return &code, nil
}
