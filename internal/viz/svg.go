package viz

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSVG draws every lit dot as a circle, scale pixels apart.
func (c *Canvas) WriteSVG(w io.Writer, scale float64, fill string) error {
	dw, dh := c.Dots()
	width, height := float64(dw)*scale, float64(dh)*scale

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	for y := range dh {
		for x := range dw {
			if c.IsSet(x, y) {
				fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}
