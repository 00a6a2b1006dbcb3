// Package docprops rewrites OOXML document properties in a copy of a
// Word template. All zip entries other than the docProps parts are copied
// raw, so untouched content stays byte-identical to the template.
package docprops

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

const (
	corePartName   = "docProps/core.xml"
	customPartName = "docProps/custom.xml"
)

// ErrMissingPart indicates the template lacks a docProps part that the
// requested properties need.
var ErrMissingPart = errors.New("template missing document properties part")

// Properties holds the values to write, split by OOXML property kind.
type Properties struct {
	Core   map[string]string
	Custom map[string]string
}

// Empty reports whether there is nothing to write.
func (p Properties) Empty() bool {
	return len(p.Core) == 0 && len(p.Custom) == 0
}

// Apply copies the template to outputPath with the given properties set.
// On failure no output file is left behind.
func Apply(templatePath, outputPath string, props Properties) (err error) {
	zr, err := zip.OpenReader(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}
	defer zr.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(outputPath)
		}
	}()

	zw := zip.NewWriter(out)

	var sawCore, sawCustom bool
	for _, f := range zr.File {
		switch {
		case f.Name == corePartName && len(props.Core) > 0:
			sawCore = true
			if err = rewriteEntry(zw, f, props.Core, updateCoreProperties); err != nil {
				return err
			}
		case f.Name == customPartName && len(props.Custom) > 0:
			sawCustom = true
			if err = rewriteEntry(zw, f, props.Custom, updateCustomProperties); err != nil {
				return err
			}
		default:
			if err = zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy entry %s: %w", f.Name, err)
			}
		}
	}

	if len(props.Core) > 0 && !sawCore {
		err = fmt.Errorf("%w: %s", ErrMissingPart, corePartName)
		return err
	}
	if len(props.Custom) > 0 && !sawCustom {
		err = fmt.Errorf("%w: %s (add a custom property to the template first)", ErrMissingPart, customPartName)
		return err
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func rewriteEntry(zw *zip.Writer, f *zip.File, values map[string]string, update func([]byte, map[string]string) ([]byte, error)) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read entry %s: %w", f.Name, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("failed to read entry %s: %w", f.Name, err)
	}

	updated, err := update(data, values)
	if err != nil {
		return err
	}

	w, err := zw.Create(f.Name)
	if err != nil {
		return fmt.Errorf("failed to rewrite entry %s: %w", f.Name, err)
	}
	if _, err := w.Write(updated); err != nil {
		return fmt.Errorf("failed to rewrite entry %s: %w", f.Name, err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
