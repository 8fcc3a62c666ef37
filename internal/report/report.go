// Package report turns a job result into the text summary printed after a
// pagination run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChuLiYu/epub-pager/pkg/types"
)

const (
	bannerLeft  = 10 // dashes before a banner label
	bannerRight = 50 // column the label is padded to
	countWidth  = 3
)

// Bucket pairs the original and paginated validator counts of one severity.
type Bucket struct {
	Severity  types.Severity
	Label     string
	Original  int
	Paginated int
}

// Suppressed reports whether the bucket has nothing to show.
func (b Bucket) Suppressed() bool {
	return b.Original == 0 && b.Paginated == 0
}

var labels = map[types.Severity]string{
	types.SeverityFatal:   "Fatal Errors",
	types.SeverityError:   "Errors",
	types.SeverityWarning: "Warnings",
}

// nouns is how each severity reads in a count line.
var nouns = map[types.Severity]string{
	types.SeverityFatal:   "fatal error(s)",
	types.SeverityError:   "error(s)",
	types.SeverityWarning: "warning(s)",
}

var pagerFlags = []struct {
	sev  types.Severity
	text string
}{
	{types.SeverityFatal, "Fatal error"},
	{types.SeverityError, "Error"},
	{types.SeverityWarning, "Warning"},
}

// Aggregate returns one bucket per severity, fatal first. Severities are
// never summed together.
func Aggregate(res types.JobResult) []Bucket {
	buckets := make([]Bucket, 0, len(types.Severities))
	for _, s := range types.Severities {
		buckets = append(buckets, Bucket{
			Severity:  s,
			Label:     labels[s],
			Original:  res.Original.Get(s),
			Paginated: res.Paginated.Get(s),
		})
	}
	return buckets
}

// Render writes the report for res. Suppressed buckets are skipped. The
// output depends only on the arguments.
func Render(w io.Writer, res types.JobResult, buckets []Bucket) error {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "Paginated ebook created: %s\n", res.Output)
	fmt.Fprintf(&b, "Paginated ebook log: %s\n", res.LogFile)
	b.WriteString("\n")

	for _, f := range pagerFlags {
		if res.Pager.Get(f.sev) != 0 {
			fmt.Fprintf(&b, "  --> %s in the pagination engine.\n", f.text)
		}
	}
	b.WriteString("\n")

	if !res.OriginalChecked && !res.PaginatedChecked {
		b.WriteString("  --> epubcheck not run; validation was not measured.\n")
	}

	for _, bk := range buckets {
		if bk.Suppressed() {
			continue
		}
		b.WriteString(banner(bk.Label))
		fmt.Fprintf(&b, "  --> %*d %s in paged book epubcheck.\n", countWidth, bk.Paginated, nouns[bk.Severity])
		fmt.Fprintf(&b, "  --> %*d %s in original book epubcheck.\n", countWidth, bk.Original, nouns[bk.Severity])
	}
	b.WriteString(strings.Repeat("-", bannerLeft+bannerRight) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the report into a string.
func String(res types.JobResult) string {
	var b strings.Builder
	_ = Render(&b, res, Aggregate(res))
	return b.String()
}

func banner(label string) string {
	pad := bannerRight - len(label)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("-", bannerLeft) + label + strings.Repeat("-", pad) + "\n"
}
