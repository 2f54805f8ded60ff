package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	productImagesText = "We hope you like dogs."

	exampleCard = `The numbers you input here indicate how many items you want in the
database **in total**. The plugin will compensate to reach your desired count.

For example, if you already have 20 products and want to add 10 more, use
"30" as a value in "Number of products".`

	helpCard = `This open-source plugin was built and is maintained by
[out:grow](https://outgrow.io).

Need developer help with your Reaction Commerce project? Reach out:

- +1 (281) OUT-GROW
- contact@outgrow.io
- https://outgrow.io`
)

func armageddonText(shopID string) string {
	if shopID == "" {
		shopID = "(unresolved)"
	}
	return fmt.Sprintf("Beware: this will erase the content of the Products, Catalog, Tags and Orders collections for shop %s.", shopID)
}

// markdown renders the static cards once. A nil renderer or a failed
// render falls back to the source text.
type markdown struct {
	renderer *glamour.TermRenderer
}

func newMarkdown(style string, width int) markdown {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return markdown{}
	}
	return markdown{renderer: r}
}

func (md markdown) render(source string) string {
	if md.renderer == nil {
		return source
	}
	out, err := md.renderer.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n")
}
