package docprops

import (
	"fmt"

	"liturgi/internal/logger"

	"github.com/beevik/etree"
)

// coreElements maps core property names to their element tags in
// docProps/core.xml. The dc and cp prefixes are declared on the part's root.
// Each target element has exactly one name here; dc:creator is addressed as
// "author" only, so no two names can race for the same element.
var coreElements = map[string]string{
	"title":       "dc:title",
	"subject":     "dc:subject",
	"author":      "dc:creator",
	"description": "dc:description",
	"keywords":    "cp:keywords",
	"category":    "cp:category",
}

func updateCoreProperties(data []byte, core map[string]string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", corePartName, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", corePartName)
	}

	for _, name := range sortedKeys(core) {
		tag, ok := coreElements[name]
		if !ok {
			logger.Warn("Skipping unknown core property", "property", name)
			continue
		}
		el := root.SelectElement(tag)
		if el == nil {
			el = root.CreateElement(tag)
		}
		el.SetText(core[name])
	}

	return doc.WriteToBytes()
}
