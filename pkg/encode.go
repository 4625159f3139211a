package simplelang

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDump Format = "dump"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatDump}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown output format %q", s)
}

// Encode writes node to w in the given format.
func Encode(w io.Writer, node Node, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ToMap(node))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ToMap(node)); err != nil {
			return err
		}

		return enc.Close()
	case FormatDump:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(w, node)
		return nil
	}

	return fmt.Errorf("unknown output format %q", format)
}

// ToMap flattens node into string keyed maps carrying a "type" entry.
// Absent optional fields are left out.
func ToMap(node Node) map[string]interface{} {
	m := map[string]interface{}{"type": node.NodeType()}

	switch n := node.(type) {
	case *Program:
		m["statements"] = stmtMaps(n.Statements)
	case *VariableDecl:
		m["identifier"] = n.Identifier
		if n.Value != nil {
			m["value"] = ToMap(n.Value)
		}
	case *Assignment:
		m["name"] = n.Name
		m["value"] = ToMap(n.Value)
	case *IfStmt:
		m["condition"] = ToMap(n.Condition)
		m["trueBranch"] = stmtMaps(n.TrueBranch)
		if n.FalseBranch != nil {
			m["falseBranch"] = stmtMaps(n.FalseBranch)
		}
	case *WhileStmt:
		m["condition"] = ToMap(n.Condition)
		m["body"] = stmtMaps(n.Body)
	case *ForStmt:
		m["initializer"] = ToMap(n.Initializer)
		m["condition"] = ToMap(n.Condition)
		m["increment"] = ToMap(n.Increment)
		m["body"] = stmtMaps(n.Body)
	case *FuncDecl:
		m["name"] = n.Name
		m["parameters"] = append([]string{}, n.Parameters...)
		m["body"] = stmtMaps(n.Body)
	case *FuncCall:
		m["name"] = n.Name
		m["arguments"] = exprMaps(n.Arguments)
	case *TryCatchStmt:
		m["tryBlock"] = stmtMaps(n.TryBlock)
		m["catchBlock"] = stmtMaps(n.CatchBlock)
	case *BlockStmt:
		m["statements"] = stmtMaps(n.Statements)
	case *PrintStmt:
		m["value"] = ToMap(n.Value)
	case *ReturnStmt:
		if n.Value != nil {
			m["value"] = ToMap(n.Value)
		}
	case *BinaryExpr:
		m["left"] = ToMap(n.Left)
		m["operator"] = n.Operator
		m["right"] = ToMap(n.Right)
	case *Comparison:
		m["left"] = ToMap(n.Left)
		m["operator"] = n.Operator
		m["right"] = ToMap(n.Right)
	case *Term:
		m["left"] = ToMap(n.Left)
		m["operation"] = map[string]interface{}{
			"operator": n.Operator,
			"right":    ToMap(n.Right),
		}
	case *Factor:
		switch {
		case n.Expression != nil:
			m["expression"] = ToMap(n.Expression)
		case n.Array != nil:
			m["array"] = ToMap(n.Array)
		default:
			m["value"] = n.Value
		}
	case *ArrayLiteral:
		m["elements"] = exprMaps(n.Elements)
	}

	return m
}

func stmtMaps(stmts []Stmt) []interface{} {
	out := make([]interface{}, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, ToMap(s))
	}

	return out
}

func exprMaps(exprs []Expr) []interface{} {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, ToMap(e))
	}

	return out
}
