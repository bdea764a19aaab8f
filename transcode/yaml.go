package transcode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	goderive "github.com/reoring/goderive"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// YAML is a Format over single YAML documents. Unlike CBOR and
// MessagePack it keeps mapping order, and it rejects duplicate keys.
func YAML() Format { return yamlFormat{} }

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Marshal(v goderive.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(valueToNode(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlFormat) Unmarshal(b []byte) (goderive.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return goderive.Value{}, err
	}
	return nodeToValue(&root)
}

func valueToNode(v goderive.Value) *yaml.Node {
	switch v.Kind() {
	case goderive.KindBool:
		b, _ := v.Bool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case goderive.KindString:
		s, _ := v.Str()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case goderive.KindNumber:
		text, _ := v.Number()
		tag := "!!int"
		if strings.ContainsAny(text, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case goderive.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items() {
			n.Content = append(n.Content, valueToNode(it))
		}
		return n
	case goderive.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				valueToNode(m.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func nodeToValue(n *yaml.Node) (goderive.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return goderive.Null(), nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		members := make([]goderive.Member, 0, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				return goderive.Value{}, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return goderive.Value{}, err
			}
			members = append(members, goderive.Member{Key: key, Value: val})
		}
		return goderive.NewObject(members...), nil
	case yaml.SequenceNode:
		items := make([]goderive.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return goderive.Value{}, err
			}
			items = append(items, v)
		}
		return goderive.NewArray(items...), nil
	case yaml.ScalarNode:
		return scalarToValue(n)
	default:
		return goderive.Value{}, fmt.Errorf("transcode: unsupported YAML node kind %d at %d:%d", n.Kind, n.Line, n.Column)
	}
}

func scalarToValue(n *yaml.Node) (goderive.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return goderive.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return goderive.Value{}, err
		}
		return goderive.NewBool(b), nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return goderive.NewInt(i), nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return goderive.NewUint(u), nil
		}
		return goderive.Value{}, fmt.Errorf("transcode: integer %s out of range at %d:%d", n.Value, n.Line, n.Column)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return goderive.Value{}, err
		}
		return goderive.NewFloat(f), nil
	default:
		return goderive.NewString(n.Value), nil
	}
}
