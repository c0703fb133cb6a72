// Package slide renders a PositionedLayout into a single-slide editable
// OOXML presentation package, per §4.7. The container — content types,
// relationship manifests, presentation/master/layout/theme parts, and the
// one generated slide part — is assembled as etree.Documents and written
// through hidez8891/zip's writer, mirroring how rupor-github-fb2cng's
// convert/epub package zips a templated XML part set into an EPUB.
package slide

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	zip "github.com/hidez8891/zip"

	"github.com/infogen/core/pkg/layout"
)

// Render builds the full OOXML package for l and writes it to w.
func Render(l *layout.PositionedLayout, w io.Writer) error {
	if l == nil {
		return fmt.Errorf("slide: nil layout")
	}

	zw := zip.NewWriter(w)

	if err := writeStatic(zw, "[Content_Types].xml", contentTypesXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "_rels/.rels", rootRelsXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/_rels/presentation.xml.rels", presentationRelsXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/presentation.xml", presentationXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/theme/theme1.xml", themeXML); err != nil {
		return err
	}
	if err := writeStatic(zw, "ppt/slides/_rels/slide1.xml.rels", slideRelsXML); err != nil {
		return err
	}

	doc, err := buildSlideDoc(l)
	if err != nil {
		return err
	}
	if err := writeDoc(zw, "ppt/slides/slide1.xml", doc); err != nil {
		return err
	}

	return zw.Close()
}

func writeStatic(zw *zip.Writer, name, content string) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, content)
	return err
}

func writeDoc(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}
