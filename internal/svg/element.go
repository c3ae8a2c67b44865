// Package svg is a small ordered element tree for building SVG documents
// deterministically.
package svg

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"
)

const Namespace = "http://www.w3.org/2000/svg"

type Attr struct {
	Key   string
	Value string
}

// Element is an SVG node. Attributes keep insertion order so the same
// build always serialises to the same bytes.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

func New(name string) *Element {
	return &Element{Name: name}
}

// Set adds or replaces an attribute.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// SetNum sets a numeric attribute formatted with Num.
func (e *Element) SetNum(key string, v float64) *Element {
	return e.Set(key, Num(v))
}

func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Clear drops every child.
func (e *Element) Clear() {
	e.Children = nil
}

// Walk visits e and its descendants depth first.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns the direct children carrying class.
func (e *Element) Find(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.HasClass(class) {
			out = append(out, c)
		}
	}
	return out
}

func (e *Element) HasClass(class string) bool {
	v, ok := e.Get("class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}

// Join makes parent hold exactly n children tagged with class, reusing
// existing ones in order, appending what is missing and removing extras.
// update is called for every joined child with its index.
func Join(parent *Element, name, class string, n int, update func(i int, el *Element)) []*Element {
	existing := parent.Find(class)

	kept := parent.Children[:0:0]
	seen := 0
	for _, c := range parent.Children {
		if c.HasClass(class) {
			if seen >= n {
				seen++
				continue
			}
			seen++
		}
		kept = append(kept, c)
	}
	parent.Children = kept

	joined := make([]*Element, n)
	for i := 0; i < n; i++ {
		var el *Element
		if i < len(existing) {
			el = existing[i]
		} else {
			el = New(name).Set("class", class)
			parent.Append(el)
		}
		update(i, el)
		joined[i] = el
	}
	return joined
}

// WriteTo serialises the tree as XML.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: bufio.NewWriter(w)}
	e.write(cw)
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

func (e *Element) String() string {
	var buf bytes.Buffer
	e.WriteTo(&buf)
	return buf.String()
}

func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	e.WriteTo(&buf)
	return buf.Bytes()
}

func (e *Element) write(w *countWriter) {
	w.str("<" + e.Name)
	for _, a := range e.Attrs {
		w.str(" " + a.Key + `="`)
		w.escape(a.Value)
		w.str(`"`)
	}
	if len(e.Children) == 0 && e.Text == "" {
		w.str("/>")
		return
	}
	w.str(">")
	if e.Text != "" {
		w.escape(e.Text)
	}
	for _, c := range e.Children {
		c.write(w)
	}
	w.str("</" + e.Name + ">")
}

type countWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countWriter) str(s string) {
	if c.err != nil {
		return
	}
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	c.err = err
}

func (c *countWriter) escape(s string) {
	if c.err != nil {
		return
	}
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	c.str(buf.String())
}

// Num formats a coordinate rounded to two decimals, without trailing zeros.
func Num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
