package ics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/emersion/go-ical"
)

// XCalNamespace is the xCal (RFC 6321) XML namespace.
const XCalNamespace = "urn:ietf:params:xml:ns:icalendar-2.0"

// MarshalXCal renders an exported calendar as xCal XML.
func MarshalXCal(cal *ical.Calendar) ([]byte, error) {
	if cal == nil {
		return nil, fmt.Errorf("ics: nil calendar")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("icalendar")
	root.CreateAttr("xmlns", XCalNamespace)
	appendComponent(root, cal.Component)
	doc.Indent(2)
	return doc.WriteToBytes()
}

func appendComponent(parent *etree.Element, comp *ical.Component) {
	el := parent.CreateElement(strings.ToLower(comp.Name))

	if len(comp.Props) > 0 {
		props := el.CreateElement("properties")
		names := make([]string, 0, len(comp.Props))
		for name := range comp.Props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, prop := range comp.Props[name] {
				appendProp(props, prop)
			}
		}
	}

	if len(comp.Children) > 0 {
		children := el.CreateElement("components")
		for _, child := range comp.Children {
			appendComponent(children, child)
		}
	}
}

func appendProp(parent *etree.Element, prop ical.Prop) {
	el := parent.CreateElement(strings.ToLower(prop.Name))
	switch prop.Name {
	case ical.PropDateTimeStart, ical.PropDateTimeEnd, ical.PropDateTimeStamp:
		if t, err := time.Parse("20060102T150405Z", prop.Value); err == nil {
			el.CreateElement("date-time").SetText(t.Format("2006-01-02T15:04:05Z"))
			return
		}
		el.CreateElement("text").SetText(prop.Value)
	case ical.PropRecurrenceRule:
		recur := el.CreateElement("recur")
		for _, part := range strings.Split(prop.Value, ";") {
			key, value, found := strings.Cut(part, "=")
			if !found {
				continue
			}
			recur.CreateElement(strings.ToLower(key)).SetText(value)
		}
	default:
		el.CreateElement("text").SetText(prop.Value)
	}
}
