package segmentation

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

const reportSeparator = "---------"

// formatFloat prints like a default C++ stream: six significant digits, no trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// WriteReport writes the image size followed by the watershed and grab-cut box sizes.
func WriteReport(w io.Writer, r *Result) error {
	if _, err := fmt.Fprintf(w, "Image: %d x %d\n", r.ImageSize.X, r.ImageSize.Y); err != nil {
		return errors.Wrap(err, "writing report")
	}
	for _, m := range []Measurement{r.Watershed, r.GrabCut} {
		if _, err := fmt.Fprintf(w, "%s\nUpright Box: %d x %d\nMin Box: %s x %s\n",
			reportSeparator,
			m.Upright.Dx(), m.Upright.Dy(),
			formatFloat(m.Min.Width), formatFloat(m.Min.Height),
		); err != nil {
			return errors.Wrap(err, "writing report")
		}
	}
	return nil
}

func (r *Result) sizesTable() table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{
		"Stage", "Upright Width", "Upright Height", "Min Width", "Min Height", "Min Angle", "Pixels",
	})
	for _, row := range []struct {
		stage string
		m     Measurement
	}{{"watershed", r.Watershed}, {"grabcut", r.GrabCut}} {
		t.AppendRow(table.Row{
			row.stage,
			row.m.Upright.Dx(), row.m.Upright.Dy(),
			formatFloat(row.m.Min.Width), formatFloat(row.m.Min.Height), formatFloat(row.m.Min.Angle),
			row.m.Points,
		})
	}
	return t
}

// Summary renders both measurements as a table.
func (r *Result) Summary() string {
	t := r.sizesTable()
	t.SetTitle(fmt.Sprintf("%d x %d", r.ImageSize.X, r.ImageSize.Y))
	return t.Render()
}

// WriteSizesCSV writes both measurements as CSV with a header row.
func WriteSizesCSV(w io.Writer, r *Result) error {
	if _, err := io.WriteString(w, r.sizesTable().RenderCSV()+"\n"); err != nil {
		return errors.Wrap(err, "writing sizes csv")
	}
	return nil
}
