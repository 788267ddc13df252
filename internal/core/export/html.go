package export

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

func converter() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		)
	})
	return md
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sprint Poker - Session Summary</title>
</head>
<body>
`

const htmlFoot = `</body>
</html>
`

// HTML renders the markdown summary as a standalone HTML document. Raw HTML in
// identifiers or voter names is dropped, never passed through.
func HTML(tasks []poker.Task) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(htmlHead)
	if err := converter().Convert([]byte(Markdown(tasks)), &buf); err != nil {
		return "", fmt.Errorf("convert summary to html: %w", err)
	}
	buf.WriteString(htmlFoot)
	return buf.String(), nil
}
