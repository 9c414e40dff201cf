package operations

import (
	"fmt"

	"github.com/lexibel/lexctl/client"
)

// EstimateBundleSize sums the server-reported sizes of a set of documents.
// Documents with an unknown size contribute zero.
func EstimateBundleSize(docs []client.Document) int64 {
	var total int64
	for _, doc := range docs {
		if doc.Size > 0 {
			total += doc.Size
		}
	}
	return total
}

// HumanReadableSize renders a byte count in a human friendly unit.
func HumanReadableSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
