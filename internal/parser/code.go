package parser

import (
	"bytes"
	"fmt"
	"go/token"
	"regexp"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

var (
	importOrPackageRegex = regexp.MustCompile(`(?m)^import \([\s\S]*?\)\n|^import .*\n|^package .*\n`)
	blankLinesRegex      = regexp.MustCompile(`\n{3,}`)
)

// CleanCode strips package clauses, imports and runs of blank lines so that
// snippets from several files can be concatenated. Non-empty results end in
// a blank line.
func CleanCode(src string) string {
	src = importOrPackageRegex.ReplaceAllString(src, "")
	src = blankLinesRegex.ReplaceAllString(src, "\n")
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	return src + "\n\n"
}

// Constants returns the const declarations of a Go source file.
func Constants(src string) (string, error) {
	file, err := decorator.Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse source: %w", err)
	}

	out := &dst.File{Name: dst.NewIdent("snippet")}
	for _, decl := range file.Decls {
		if gen, ok := decl.(*dst.GenDecl); ok && gen.Tok == token.CONST {
			out.Decls = append(out.Decls, gen)
		}
	}
	return render(out)
}

// TypeCode returns the declaration of type name and all of its methods from
// cleaned, concatenated source.
func TypeCode(src, name string) (string, error) {
	file, err := parseSnippet(src)
	if err != nil {
		return "", err
	}

	out := &dst.File{Name: dst.NewIdent("snippet")}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *dst.GenDecl:
			if d.Tok == token.TYPE && declaresType(d, func(n string) bool { return n == name }) {
				out.Decls = append(out.Decls, d)
			}
		case *dst.FuncDecl:
			if receiverType(d) == name {
				out.Decls = append(out.Decls, d)
			}
		}
	}
	return render(out)
}

// BenchmarkCode returns the Benchmark<name>_* functions of the source
// together with the local types (and their methods) and helper functions
// they reference. Within each kind the source order is kept and benchmark
// functions come last.
func BenchmarkCode(src, name string) (string, error) {
	file, err := parseSnippet(src)
	if err != nil {
		return "", err
	}

	types := make(map[string]bool)
	funcs := make(map[string]bool)
	var benchFuncs []dst.Decl
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *dst.GenDecl:
			if d.Tok == token.TYPE {
				for _, spec := range d.Specs {
					if ts, ok := spec.(*dst.TypeSpec); ok {
						types[ts.Name.Name] = false
					}
				}
			}
		case *dst.FuncDecl:
			switch {
			case strings.HasPrefix(d.Name.Name, "Benchmark"+name+"_"):
				benchFuncs = append(benchFuncs, d)
			case d.Recv == nil && !strings.HasPrefix(d.Name.Name, "Benchmark"):
				funcs[d.Name.Name] = false
			}
		}
	}

	for _, fn := range benchFuncs {
		dst.Inspect(fn, func(n dst.Node) bool {
			if ident, ok := n.(*dst.Ident); ok {
				if _, ok := types[ident.Name]; ok {
					types[ident.Name] = true
				}
				if _, ok := funcs[ident.Name]; ok {
					funcs[ident.Name] = true
				}
			}
			return true
		})
	}

	out := &dst.File{Name: dst.NewIdent("snippet")}
	added := make(map[dst.Decl]bool)
	add := func(d dst.Decl) {
		if !added[d] {
			out.Decls = append(out.Decls, d)
			added[d] = true
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *dst.GenDecl:
			if d.Tok == token.TYPE && declaresType(d, func(n string) bool { return types[n] }) {
				add(d)
			}
		case *dst.FuncDecl:
			if d.Recv != nil && types[receiverType(d)] {
				add(d)
			}
			if d.Recv == nil && funcs[d.Name.Name] {
				add(d)
			}
		}
	}
	for _, fn := range benchFuncs {
		add(fn)
	}
	return render(out)
}

func parseSnippet(src string) (*dst.File, error) {
	file, err := decorator.Parse("package snippet\n\n" + CleanCode(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return file, nil
}

func declaresType(d *dst.GenDecl, match func(string) bool) bool {
	for _, spec := range d.Specs {
		if ts, ok := spec.(*dst.TypeSpec); ok && match(ts.Name.Name) {
			return true
		}
	}
	return false
}

// receiverType returns T for methods on T and *T.
func receiverType(fd *dst.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	switch expr := fd.Recv.List[0].Type.(type) {
	case *dst.StarExpr:
		if ident, ok := expr.X.(*dst.Ident); ok {
			return ident.Name
		}
	case *dst.Ident:
		return expr.Name
	}
	return ""
}

func render(file *dst.File) (string, error) {
	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, file); err != nil {
		return "", fmt.Errorf("failed to print source: %w", err)
	}
	return CleanCode(buf.String()), nil
}
