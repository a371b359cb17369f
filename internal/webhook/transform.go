// Package webhook преобразует XML-уведомления курьерской системы
// в текст для отправки в чат.
package webhook

import (
	"encoding/xml"
	"errors"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidXML возвращается, если тело вебхука не является корректным XML.
var ErrInvalidXML = errors.New("invalid XML format")

// node — обобщённое представление XML-элемента: атрибуты, вложенные элементы, текст.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *node) child(name string) (*node, bool) {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i], true
		}
	}
	return nil, false
}

// toMap сворачивает элемент в map: атрибуты под ключом "@attributes",
// листовые элементы — в строки, вложенные — в такие же map.
// Повторяющиеся одноимённые элементы собираются в массив.
func (n *node) toMap() map[string]any {
	m := make(map[string]any)

	if len(n.Attrs) > 0 {
		attrs := make(map[string]any, len(n.Attrs))
		for _, a := range n.Attrs {
			attrs[a.Name.Local] = a.Value
		}
		m["@attributes"] = attrs
	}

	for i := range n.Nodes {
		child := &n.Nodes[i]

		var v any
		if len(child.Nodes) == 0 && len(child.Attrs) == 0 {
			v = strings.TrimSpace(child.Text)
		} else {
			v = child.toMap()
		}

		key := child.XMLName.Local
		switch prev := m[key].(type) {
		case nil:
			m[key] = v
		case []any:
			m[key] = append(prev, v)
		default:
			m[key] = []any{prev, v}
		}
	}

	return m
}

// Notification содержит готовый текст уведомления и разобранные данные вебхука.
type Notification struct {
	Text string
	Data map[string]any
}

// Parse разбирает XML-уведомление курьерской системы и строит текст сообщения:
// атрибуты корневого элемента, штрихкод, данные отправителя и исходный XML.
func Parse(raw []byte) (*Notification, error) {
	var root node
	if err := xml.Unmarshal(raw, &root); err != nil {
		return nil, ErrInvalidXML
	}

	return &Notification{
		Text: renderText(&root, raw),
		Data: root.toMap(),
	}, nil
}

func renderText(root *node, raw []byte) string {
	var b strings.Builder

	b.WriteString("📦 New Courier Update\n\n")

	for _, a := range root.Attrs {
		b.WriteString("• " + ucfirst(a.Name.Local) + ": " + a.Value + "\n")
	}

	if barcode, ok := root.child("barcode"); ok {
		if v := strings.TrimSpace(barcode.Text); v != "" {
			b.WriteString("• Barcode: " + v + "\n")
		}
	}

	if sender, ok := root.child("sender"); ok {
		b.WriteString("\n📫 Sender Info:\n")
		for i := range sender.Nodes {
			sub := &sender.Nodes[i]
			v := strings.TrimSpace(sub.Text)
			if v == "" {
				continue
			}
			b.WriteString("• " + ucfirst(sub.XMLName.Local) + ": " + v + "\n")
		}
	}

	b.WriteString("\n📄 Raw XML:\n<code>" + html.EscapeString(string(raw)) + "</code>")

	return b.String()
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
