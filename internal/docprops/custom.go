package docprops

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

const customFmtID = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"

func updateCustomProperties(data []byte, custom map[string]string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", customPartName, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", customPartName)
	}

	// Fresh properties get pids past the highest one already in the part.
	pid := 1
	for _, p := range root.SelectElements("property") {
		if v, err := strconv.Atoi(p.SelectAttrValue("pid", "0")); err == nil && v > pid {
			pid = v
		}
	}
	pid++

	for _, name := range sortedKeys(custom) {
		var prop *etree.Element
		for _, p := range root.SelectElements("property") {
			if p.SelectAttrValue("name", "") == name {
				prop = p
				break
			}
		}
		if prop == nil {
			prop = root.CreateElement("property")
			prop.CreateAttr("fmtid", customFmtID)
			prop.CreateAttr("pid", strconv.Itoa(pid))
			prop.CreateAttr("name", name)
			pid++
		}
		for _, child := range prop.ChildElements() {
			prop.RemoveChild(child)
		}
		prop.CreateElement("vt:lpwstr").SetText(custom[name])
	}

	return doc.WriteToBytes()
}
