// AngelaMos | 2026
// xml.go

package pptx

import (
	"strconv"

	"github.com/beevik/etree"
)

func isNS(el *etree.Element, ns, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == ns
}

func childNS(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if isNS(c, ns, local) {
			return c
		}
	}
	return nil
}

func childrenNS(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isNS(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// prefixFor finds the prefix bound to ns in scope of el, falling back to the
// conventional OOXML prefix.
func prefixFor(el *etree.Element, ns string) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == ns {
				return a.Key
			}
		}
	}
	return conventionalPrefixes[ns]
}

func newChild(parent *etree.Element, ns, local string) *etree.Element {
	return etree.NewElement(qualified(prefixFor(parent, ns), local))
}

func qualified(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func int64Attr(el *etree.Element, key string) (int64, bool) {
	if el == nil {
		return 0, false
	}
	v := el.SelectAttrValue(key, "")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, c := range el.ChildElements() {
		walk(c, fn)
	}
}
