// Package dom is the node-tree target the kernel renders into. Nodes are
// golang.org/x/net/html nodes so pre-rendered markup can be parsed and
// adopted directly.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Node = html.Node

func Element(name string) *Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
}

func Text(data string) *Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func Space() *Node {
	return Text(" ")
}

// Append moves node to the end of target's children.
func Append(target, node *Node) {
	if node.Parent == target && target.LastChild == node {
		return
	}
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
	target.AppendChild(node)
}

// Insert moves node in front of anchor. A nil anchor appends.
func Insert(target, node, anchor *Node) {
	if anchor == nil {
		Append(target, node)
		return
	}
	if anchor.Parent != target {
		panic(fmt.Sprintf("dom: anchor <%s> is not a child of <%s>", anchor.Data, target.Data))
	}
	if node == anchor || (node.Parent == target && node.NextSibling == anchor) {
		return
	}
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
	target.InsertBefore(node, anchor)
}

// Detach removes node from its parent. A node without a parent means
// something outside the runtime changed the tree, which is unrecoverable.
func Detach(node *Node) {
	if node.Parent == nil {
		panic(fmt.Sprintf("dom: detach of %q without parent", describe(node)))
	}
	node.Parent.RemoveChild(node)
}

func Children(node *Node) []*Node {
	var children []*Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

func Attr(node *Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr writes an attribute, skipping the write when the value is unchanged.
func SetAttr(node *Node, key, val string) {
	for i, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			if a.Val != val {
				node.Attr[i].Val = val
			}
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(node *Node, key string) {
	attrs := node.Attr[:0]
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	node.Attr = attrs
}

// SetData updates a text node when its content differs.
func SetData(node *Node, data string) {
	if node.Data != data {
		node.Data = data
	}
}

// SetInputValue stores a form control value in its value attribute.
func SetInputValue(node *Node, val string) {
	SetAttr(node, "value", val)
}

func InputValue(node *Node) string {
	v, _ := Attr(node, "value")
	return v
}

// TextContent concatenates every descendant text node.
func TextContent(node *Node) string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return sb.String()
}

// Body returns a detached <body> element to use as a mount target.
func Body() *Node {
	return Element("body")
}

// ParseInto parses markup as the children of target, which is usually an
// element returned by Body.
func ParseInto(target *Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     target.Data,
		DataAtom: target.DataAtom,
	})
	if err != nil {
		return errors.Wrap(err, "parse fragment")
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return nil
}

// Render writes the children of node as markup.
func Render(node *Node) (string, error) {
	var buf bytes.Buffer
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", errors.Wrap(err, "render")
		}
	}
	return buf.String(), nil
}

// Find returns the first descendant element with the given tag name and, if
// class is not empty, a matching class attribute.
func Find(node *Node, name, class string) *Node {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			if class == "" {
				return c
			}
			if v, ok := Attr(c, "class"); ok && v == class {
				return c
			}
		}
		if found := Find(c, name, class); found != nil {
			return found
		}
	}
	return nil
}

func describe(node *Node) string {
	switch node.Type {
	case html.TextNode:
		return "#text " + node.Data
	case html.ElementNode:
		return "<" + node.Data + ">"
	default:
		return node.Data
	}
}
