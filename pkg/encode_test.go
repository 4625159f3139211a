package simplelang

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToMap(t *testing.T) {
	got, err := parseSource(t, "var x = 1; if (x) { return; } else { print a * b; }")
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"type": "program",
		"statements": []interface{}{
			map[string]interface{}{
				"type":       "variableDeclaration",
				"identifier": "x",
				"value":      map[string]interface{}{"type": "factor", "value": "1"},
			},
			map[string]interface{}{
				"type":      "ifStatement",
				"condition": map[string]interface{}{"type": "factor", "value": "x"},
				"trueBranch": []interface{}{
					map[string]interface{}{"type": "returnStatement"},
				},
				"falseBranch": []interface{}{
					map[string]interface{}{
						"type": "printStatement",
						"value": map[string]interface{}{
							"type": "term",
							"left": map[string]interface{}{"type": "factor", "value": "a"},
							"operation": map[string]interface{}{
								"operator": "*",
								"right":    map[string]interface{}{"type": "factor", "value": "b"},
							},
						},
					},
				},
			},
		},
	}, ToMap(got))
}

func TestToMapOmitsAbsentFields(t *testing.T) {
	m := ToMap(&IfStmt{Condition: ident("x"), TrueBranch: []Stmt{}})
	assert.NotContains(t, m, "falseBranch")

	m = ToMap(&VariableDecl{Identifier: "x"})
	assert.NotContains(t, m, "value")

	m = ToMap(&Program{})
	assert.Equal(t, []interface{}{}, m["statements"])
}

func TestEncode(t *testing.T) {
	program, err := parseSource(t, "function f(a) { print [a]; }")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, program, FormatJSON))

	var fromJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, "program", fromJSON["type"])
	assert.Contains(t, buf.String(), `"type": "functionDeclaration"`)
	assert.Contains(t, buf.String(), `"type": "arrayLiteral"`)

	buf.Reset()
	require.NoError(t, Encode(&buf, program, FormatYAML))

	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "program", fromYAML["type"])
	assert.Contains(t, buf.String(), "type: functionDeclaration")

	buf.Reset()
	require.NoError(t, Encode(&buf, program, FormatDump))
	assert.Contains(t, buf.String(), "FuncDecl")
	assert.Contains(t, buf.String(), `Name: (string) (len=1) "f"`)

	assert.Error(t, Encode(&buf, program, Format("xml")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	assert.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.EqualError(t, err, `unknown output format "toml"`)
}
