// Package qrcode renders the scannable link printed on a beer's label.
package qrcode

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

type Generator struct {
	baseURL string
	size    int
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), size: defaultSize}
}

// Link is the public URL of the beer page the code points to.
func (g *Generator) Link(beerID uint) string {
	return fmt.Sprintf("%s/beers/%d", g.baseURL, beerID)
}

// Generate returns a PNG QR code of Link(beerID).
func (g *Generator) Generate(beerID uint) ([]byte, error) {
	return goqrcode.Encode(g.Link(beerID), goqrcode.Medium, g.size)
}
