package htmlutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(`
		<div class="descripcion">
			Listado de   especies.
			13/06/2025.
		</div>
	`))
	require.NoError(t, err)

	text := SelectionText(doc.Find("div.descripcion"))
	require.Equal(t, "Listado de especies. 13/06/2025.", text)

	require.Equal(t, "", SelectionText(doc.Find("div.missing")))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b", CleanText("  a \n\t b  "))
}
