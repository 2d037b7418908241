package erd

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/yaml2erd/pkg/schema"
)

// Header lists the eight column attribute names shown above the column rows:
// physical name, logical name, type, PK, FK, NOT NULL, default, description.
type Header [8]string

// DefaultHeader is the column header row used unless [WithHeader] is given.
var DefaultHeader = Header{"物理名", "論理名", "型", "PK", "FK", "NOT_NULL", "DEFAULT", "説明"}

// EnglishHeader is an alternative header row for [WithHeader].
var EnglishHeader = Header{"Name", "Logical name", "Type", "PK", "FK", "NOT NULL", "Default", "Description"}

// CheckMark marks a set column flag.
const CheckMark = "✔︎"

const (
	headerColor = "lightblue"
	bodyColor   = "white"
)

type align string

const (
	alignLeft   align = "left"
	alignCenter align = "center"
)

type cell struct {
	text  string
	align align
}

// Label renders the HTML-like table label of one entity: a title row, the
// header row, one row per column in declaration order and a footer row with
// the table description.
func Label(m *schema.Model, header Header) string {
	var b strings.Builder
	b.WriteString("<table border='0' cellborder='1' cellpadding='8'>")
	writeSpanRow(&b, escape(m.Name), len(header))

	b.WriteString("<tr>")
	for _, h := range header {
		fmt.Fprintf(&b, "<td bgcolor='%s'>%s</td>", headerColor, escape(h))
	}
	b.WriteString("</tr>")

	for _, col := range m.ParsedColumns {
		writeColumnRow(&b, col)
	}

	writeSpanRow(&b, multiline(m.Description), len(header))
	b.WriteString("</table>")
	return b.String()
}

func writeSpanRow(b *strings.Builder, text string, span int) {
	fmt.Fprintf(b, "<tr><td bgcolor='%s' colspan='%d'>%s</td></tr>", headerColor, span, text)
}

func writeColumnRow(b *strings.Builder, col schema.Column) {
	cells := []cell{
		{escape(col.Name), alignLeft},
		{escape(col.LogicalName), alignLeft},
		{escape(col.Type), alignLeft},
		{checkMark(col.Options.PrimaryKey), alignCenter},
		{checkMark(col.Options.ForeignKey), alignCenter},
		{checkMark(col.Options.NotNull), alignCenter},
		{escape(col.Options.Default), alignLeft},
		{multiline(col.Description), alignLeft},
	}
	b.WriteString("<tr>")
	for _, c := range cells {
		fmt.Fprintf(b, "<td bgcolor='%s' align='%s'>%s</td>", bodyColor, c.align, c.text)
	}
	b.WriteString("</tr>")
}

func checkMark(set bool) string {
	if set {
		return CheckMark
	}
	return ""
}

var lineBreaks = strings.NewReplacer("\r\n", "<br />", "\r", "<br />", "\n", "<br />")

// multiline escapes s and turns its line breaks into <br /> tags.
func multiline(s string) string {
	return lineBreaks.Replace(escape(s))
}

func escape(s string) string {
	return html.EscapeString(s)
}
